package message

import (
	"context"
	"sort"
	"testing"
	"time"

	domainListing "hamrah-bazaar/internal/domain/listing"
	domainMessage "hamrah-bazaar/internal/domain/message"
	domainUser "hamrah-bazaar/internal/domain/user"
	appErrors "hamrah-bazaar/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageRepo struct {
	messages map[uuid.UUID]*domainMessage.Message
	seq      int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[uuid.UUID]*domainMessage.Message)}
}

func (r *fakeMessageRepo) Create(_ context.Context, m *domainMessage.Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.seq++
	m.CreatedAt = time.Unix(int64(r.seq), 0)
	cp := *m
	r.messages[m.ID] = &cp
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id uuid.UUID) (*domainMessage.Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, domainMessage.ErrMessageNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMessageRepo) ListConversation(_ context.Context, listingID, userA, userB uuid.UUID) ([]*domainMessage.Message, error) {
	var out []*domainMessage.Message
	for _, m := range r.messages {
		if m.ListingID != listingID {
			continue
		}
		if (m.SenderID == userA && m.ReceiverID == userB) || (m.SenderID == userB && m.ReceiverID == userA) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMessageRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]*domainMessage.Message, error) {
	var out []*domainMessage.Message
	for _, m := range r.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	m, ok := r.messages[id]
	if !ok {
		return domainMessage.ErrMessageNotFound
	}
	m.Read = true
	return nil
}

func (r *fakeMessageRepo) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.ReceiverID == userID && !m.Read {
			count++
		}
	}
	return count, nil
}

type fakeListingRepo struct {
	listings map[uuid.UUID]*domainListing.Listing
}

func (r *fakeListingRepo) Create(_ context.Context, l *domainListing.Listing) error { return nil }
func (r *fakeListingRepo) Update(_ context.Context, l *domainListing.Listing) error { return nil }
func (r *fakeListingRepo) Delete(_ context.Context, id uuid.UUID) error             { return nil }
func (r *fakeListingRepo) SetState(_ context.Context, id uuid.UUID, s domainListing.State) error {
	return nil
}
func (r *fakeListingRepo) IncrementViews(_ context.Context, id uuid.UUID) error { return nil }
func (r *fakeListingRepo) Query(_ context.Context, f *domainListing.Filter) ([]*domainListing.Listing, error) {
	return nil, nil
}
func (r *fakeListingRepo) ListByOwner(_ context.Context, id uuid.UUID) ([]*domainListing.Listing, error) {
	return nil, nil
}
func (r *fakeListingRepo) ListPending(_ context.Context) ([]*domainListing.Listing, error) {
	return nil, nil
}

func (r *fakeListingRepo) GetByID(_ context.Context, id uuid.UUID) (*domainListing.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, domainListing.ErrListingNotFound
	}
	return l, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domainUser.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *domainUser.User) error { return nil }
func (r *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*domainUser.User, error) {
	return nil, domainUser.ErrUserNotFound
}
func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	return nil, domainUser.ErrUserNotFound
}
func (r *fakeUserRepo) GetAll(_ context.Context) ([]*domainUser.User, error) { return nil, nil }
func (r *fakeUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, name, bio, avatar *string) error {
	return nil
}
func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return u, nil
}

type fixture struct {
	svc       *Service
	seller    *domainUser.User
	buyer     *domainUser.User
	listingID uuid.UUID
}

func newFixture() *fixture {
	seller := &domainUser.User{ID: uuid.New(), Name: "Ahmad", Phone: "+93700000001"}
	buyer := &domainUser.User{ID: uuid.New(), Name: "Farid", Phone: "+93700000002"}

	listingID := uuid.New()
	listingRepo := &fakeListingRepo{listings: map[uuid.UUID]*domainListing.Listing{
		listingID: {
			ID:     listingID,
			Title:  "Toyota Corolla 2015",
			UserID: seller.ID,
			State:  domainListing.StateApproved,
		},
	}}
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*domainUser.User{
		seller.ID: seller,
		buyer.ID:  buyer,
	}}

	return &fixture{
		svc:       NewService(newFakeMessageRepo(), listingRepo, userRepo),
		seller:    seller,
		buyer:     buyer,
		listingID: listingID,
	}
}

func TestSendMessage(t *testing.T) {
	f := newFixture()

	sent, err := f.svc.Send(context.Background(), f.buyer.ID, &SendMessageRequest{
		ListingID:  f.listingID,
		ReceiverID: f.seller.ID,
		Content:    "Is the car still available?",
	})
	require.NoError(t, err)

	assert.Equal(t, f.buyer.ID, sent.SenderID)
	assert.Equal(t, f.seller.ID, sent.ReceiverID)
	assert.False(t, sent.Read)
}

func TestSendMessageToSelf(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Send(context.Background(), f.seller.ID, &SendMessageRequest{
		ListingID:  f.listingID,
		ReceiverID: f.seller.ID,
		Content:    "hello",
	})
	assert.ErrorIs(t, err, domainMessage.ErrSelfMessage)
}

func TestSendMessageUnknownListing(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Send(context.Background(), f.buyer.ID, &SendMessageRequest{
		ListingID:  uuid.New(),
		ReceiverID: f.seller.ID,
		Content:    "hello",
	})
	assert.ErrorIs(t, err, domainListing.ErrListingNotFound)
}

func TestSendMessageUnknownReceiver(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Send(context.Background(), f.buyer.ID, &SendMessageRequest{
		ListingID:  f.listingID,
		ReceiverID: uuid.New(),
		Content:    "hello",
	})
	assert.ErrorIs(t, err, domainUser.ErrUserNotFound)
}

func TestConversationOrderedOldestFirst(t *testing.T) {
	f := newFixture()

	for _, content := range []string{"Is it available?", "Yes it is", "Can I see it tomorrow?"} {
		sender, receiver := f.buyer.ID, f.seller.ID
		if content == "Yes it is" {
			sender, receiver = f.seller.ID, f.buyer.ID
		}
		_, err := f.svc.Send(context.Background(), sender, &SendMessageRequest{
			ListingID:  f.listingID,
			ReceiverID: receiver,
			Content:    content,
		})
		require.NoError(t, err)
	}

	thread, err := f.svc.Conversation(context.Background(), f.listingID, f.buyer.ID, f.seller.ID)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "Is it available?", thread[0].Content)
	assert.Equal(t, "Yes it is", thread[1].Content)
	assert.Equal(t, "Can I see it tomorrow?", thread[2].Content)
}

func TestMarkReadReceiverOnly(t *testing.T) {
	f := newFixture()

	sent, err := f.svc.Send(context.Background(), f.buyer.ID, &SendMessageRequest{
		ListingID:  f.listingID,
		ReceiverID: f.seller.ID,
		Content:    "Is it available?",
	})
	require.NoError(t, err)

	// The sender cannot mark their own message as read
	err = f.svc.MarkRead(context.Background(), sent.ID, f.buyer.ID)
	assert.ErrorIs(t, err, appErrors.ErrInsufficientPermissions)

	require.NoError(t, f.svc.MarkRead(context.Background(), sent.ID, f.seller.ID))

	count, err := f.svc.UnreadCount(context.Background(), f.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count.Count)
}

func TestUnreadCount(t *testing.T) {
	f := newFixture()

	for i := 0; i < 3; i++ {
		_, err := f.svc.Send(context.Background(), f.buyer.ID, &SendMessageRequest{
			ListingID:  f.listingID,
			ReceiverID: f.seller.ID,
			Content:    "ping",
		})
		require.NoError(t, err)
	}

	count, err := f.svc.UnreadCount(context.Background(), f.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count.Count)

	count, err = f.svc.UnreadCount(context.Background(), f.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count.Count)
}
