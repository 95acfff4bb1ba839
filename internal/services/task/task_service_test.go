package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTaskStore struct {
	created  []SequencedUser
	lastReq  *SaveTaskRequest
	statuses map[uuid.UUID]Status
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{statuses: map[uuid.UUID]Status{}}
}

func (f *fakeTaskStore) Create(ctx context.Context, req *SaveTaskRequest, users []SequencedUser) (*TaskDetail, error) {
	f.lastReq = req
	f.created = users
	return &TaskDetail{Task: &Task{ID: uuid.New(), Title: req.Title, Priority: Priority(req.Priority)}}, nil
}

func (f *fakeTaskStore) Update(ctx context.Context, id uuid.UUID, req *SaveTaskRequest, users []SequencedUser) (*TaskDetail, error) {
	f.lastReq = req
	f.created = users
	return &TaskDetail{Task: &Task{ID: id, Title: req.Title, Priority: Priority(req.Priority)}}, nil
}

func (f *fakeTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*TaskDetail, error) {
	return nil, ErrTaskNotFound
}

func (f *fakeTaskStore) List(ctx context.Context) ([]*Task, error) { return nil, nil }

func (f *fakeTaskStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Task, error) {
	return nil, nil
}

func (f *fakeTaskStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeTaskStore) SetAssignmentStatus(ctx context.Context, assignmentID uuid.UUID, status Status) error {
	f.statuses[assignmentID] = status
	return nil
}

func (f *fakeTaskStore) EligibleUsers(ctx context.Context, projectIDs []uuid.UUID) ([]*EligibleUser, error) {
	return []*EligibleUser{}, nil
}

func (f *fakeTaskStore) StatsByProject(ctx context.Context) ([]*ProjectStats, error) {
	return nil, nil
}

func validRequest() *SaveTaskRequest {
	deadline := time.Now().Add(72 * time.Hour)
	return &SaveTaskRequest{
		Title:      "Calibrate line 3 sensors",
		Priority:   string(PriorityHigh),
		Deadline:   &deadline,
		ProjectIDs: []uuid.UUID{uuid.New()},
		UserIDs:    []uuid.UUID{uuid.New(), uuid.New()},
	}
}

func TestTaskServiceCreateValidation(t *testing.T) {
	svc := NewTaskService(newFakeTaskStore())
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*SaveTaskRequest)
		wantErr error
	}{
		{"missing title", func(r *SaveTaskRequest) { r.Title = "   " }, ErrMissingTitle},
		{"bad priority", func(r *SaveTaskRequest) { r.Priority = "urgent" }, ErrInvalidPriority},
		{"no projects", func(r *SaveTaskRequest) { r.ProjectIDs = nil }, ErrNoProjects},
		{"no assignees", func(r *SaveTaskRequest) { r.UserIDs = nil }, ErrNoAssignees},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTaskServiceCreateDeduplicatesAssignees(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewTaskService(store)

	dup := uuid.New()
	req := validRequest()
	req.UserIDs = []uuid.UUID{dup, uuid.New(), dup}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, store.created, 2)
	for _, u := range store.created {
		assert.Zero(t, u.Sequence, "plain assignments carry no sequence")
	}
}

func TestTaskServiceCreateSequential(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewTaskService(store)

	first, second := uuid.New(), uuid.New()
	req := validRequest()
	req.UserIDs = nil
	req.IsSequential = true
	req.UsersWithSequence = []SequencedUser{
		{UserID: first, Sequence: 1},
		{UserID: second, Sequence: 2},
	}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, store.created, 2)
	assert.Equal(t, first, store.created[0].UserID)
	assert.Equal(t, 2, store.created[1].Sequence)
}

func TestTaskServiceCreateSequentialRejectsBadSequence(t *testing.T) {
	svc := NewTaskService(newFakeTaskStore())

	req := validRequest()
	req.UserIDs = nil
	req.IsSequential = true

	t.Run("empty", func(t *testing.T) {
		req.UsersWithSequence = nil
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrNoAssignees)
	})

	t.Run("gap", func(t *testing.T) {
		req.UsersWithSequence = []SequencedUser{
			{UserID: uuid.New(), Sequence: 1},
			{UserID: uuid.New(), Sequence: 3},
		}
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrSequenceNotContiguous)
	})

	t.Run("duplicate user", func(t *testing.T) {
		id := uuid.New()
		req.UsersWithSequence = []SequencedUser{
			{UserID: id, Sequence: 1},
			{UserID: id, Sequence: 2},
		}
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrDuplicateAssignee)
	})
}

func TestTaskServiceSetAssignmentStatus(t *testing.T) {
	store := newFakeTaskStore()
	svc := NewTaskService(store)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, svc.SetAssignmentStatus(ctx, id, StatusOngoing))
	assert.Equal(t, StatusOngoing, store.statuses[id])

	err := svc.SetAssignmentStatus(ctx, id, Status("Done"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, StatusOngoing, store.statuses[id], "invalid status must not be stored")
}

func TestTaskServiceEligibleUsersRequiresProjects(t *testing.T) {
	svc := NewTaskService(newFakeTaskStore())
	_, err := svc.EligibleUsers(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoProjects)
}
