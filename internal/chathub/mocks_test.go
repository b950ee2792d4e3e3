package chathub_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"matchpoint/backend/internal/chathub"
	"matchpoint/backend/internal/models"
	"matchpoint/backend/internal/upload"
)

// MockStore is a testify double for the storage.Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStore) UpdateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStore) FindMatchBetween(ctx context.Context, userA, userB string) (*models.Match, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockStore) SaveMatch(ctx context.Context, match *models.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockStore) MatchesForUser(ctx context.Context, userID string, status models.MatchStatus) ([]models.Match, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Match), args.Error(1)
}

func (m *MockStore) CreateMessage(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockStore) MessagesBetween(ctx context.Context, userA, userB string) ([]models.Message, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStore) CountUnseenMessages(ctx context.Context, senderID, recipientID string) (int64, error) {
	args := m.Called(ctx, senderID, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) MarkMessagesSeen(ctx context.Context, senderID, recipientID string) (int64, error) {
	args := m.Called(ctx, senderID, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) SaveAsset(ctx context.Context, asset *models.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockStore) GetAssetByUserID(ctx context.Context, userID string) (*models.Asset, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockStore) StoreOTP(ctx context.Context, phone, code string, ttl time.Duration) error {
	args := m.Called(ctx, phone, code, ttl)
	return args.Error(0)
}

func (m *MockStore) VerifyOTP(ctx context.Context, phone, code string) (bool, error) {
	args := m.Called(ctx, phone, code)
	return args.Bool(0), args.Error(1)
}

// MockUploader is a testify double for the upload.Uploader interface.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, file upload.File, category, ownerPath string) (string, error) {
	args := m.Called(ctx, file, category, ownerPath)
	return args.String(0), args.Error(1)
}

// MockClient is a test double for the chathub.Client interface. Events the
// hub sends land in Recv.
type MockClient struct {
	socketID string
	userID   string

	Recv chan chathub.Event

	closeOnce sync.Once
}

func newMockClient(socketID, userID string) *MockClient {
	return &MockClient{
		socketID: socketID,
		userID:   userID,
		Recv:     make(chan chathub.Event, 16), // buffered so the hub never evicts test clients
	}
}

// newSlowClient has no receive buffer, so any send to it trips the hub's
// eviction path.
func newSlowClient(socketID, userID string) *MockClient {
	return &MockClient{
		socketID: socketID,
		userID:   userID,
		Recv:     make(chan chathub.Event),
	}
}

func (c *MockClient) GetSocketID() string                  { return c.socketID }
func (c *MockClient) GetUserID() string                    { return c.userID }
func (c *MockClient) GetSendChannel() chan<- chathub.Event { return c.Recv }
func (c *MockClient) Run()                                 {}

func (c *MockClient) Close() {
	c.closeOnce.Do(func() { close(c.Recv) })
}

// drain returns every event currently buffered for the client.
func (c *MockClient) drain() []chathub.Event {
	var events []chathub.Event
	for {
		select {
		case e := <-c.Recv:
			events = append(events, e)
		default:
			return events
		}
	}
}
