package services

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adilsaaly/trackport/internal/config"
	"github.com/adilsaaly/trackport/internal/db"
	"github.com/adilsaaly/trackport/internal/mailer"
	"github.com/adilsaaly/trackport/internal/ratelimit"
	"github.com/adilsaaly/trackport/internal/services/attendance"
	"github.com/adilsaaly/trackport/internal/services/insights"
	"github.com/adilsaaly/trackport/internal/services/project"
	"github.com/adilsaaly/trackport/internal/services/task"
	"github.com/adilsaaly/trackport/internal/services/user"
)

// Sign-in attempts allowed per identity per window.
const (
	signInAttempts = 10
	signInWindow   = time.Minute
)

type Services struct {
	User       *user.UserService
	Attendance *attendance.AttendanceService
	Project    *project.ProjectService
	Task       *task.TaskService
	Insights   *insights.InsightsService

	SignInLimiter ratelimit.Limiter
}

func NewServices(conf *config.Config) *Services {
	dbconn := db.NewConn(conf)

	welcomeMailer := mailer.New(mailer.Options{
		Host:     conf.SMTP_HOST,
		Port:     conf.SMTP_PORT,
		Username: conf.SMTP_USERNAME,
		Password: conf.SMTP_PASSWORD,
		From:     conf.SMTP_FROM,
		AppURL:   conf.APP_URL,
	})

	var gen insights.Generator
	if conf.GEMINI_API_KEY != "" {
		gen = insights.NewClient(&insights.ClientOptions{ApiKey: conf.GEMINI_API_KEY})
	} else {
		slog.Info("GEMINI_API_KEY not set, analytics summaries will be stats-only")
	}

	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(signInAttempts, signInWindow)
	if conf.REDIS_ADDR != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     conf.REDIS_ADDR,
			Password: conf.REDIS_PASSWORD,
		})
		limiter = ratelimit.NewRedisLimiter(client, "signin:", signInAttempts, signInWindow)
		slog.Info("Using redis for sign-in rate limiting", slog.String("addr", conf.REDIS_ADDR))
	}

	taskRepo := task.NewTaskRepo(dbconn)
	taskSvc := task.NewTaskService(taskRepo)

	return &Services{
		User:          user.NewUserService(user.NewUserRepo(dbconn), welcomeMailer),
		Attendance:    attendance.NewAttendanceService(attendance.NewAttendanceRepo(dbconn)),
		Project:       project.NewProjectService(project.NewProjectRepo(dbconn)),
		Task:          taskSvc,
		Insights:      insights.NewInsightsService(taskRepo, gen),
		SignInLimiter: limiter,
	}
}
