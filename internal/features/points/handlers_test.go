package points_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ledgerbot/internal/common"
	"ledgerbot/internal/features/archive"
	"ledgerbot/internal/features/points"
	"ledgerbot/internal/gateway"
)

const (
	chatID    = int64(-100123)
	messageID = int64(555)
)

// fakeGateway records outbound messages.
type fakeGateway struct {
	mu        sync.Mutex
	sent      []string
	nextMsgID int64
}

func (f *fakeGateway) SendMessage(ctx context.Context, channelID int64, text string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextMsgID++
	f.sent = append(f.sent, text)
	return f.nextMsgID, nil
}

func (f *fakeGateway) DeleteMessage(ctx context.Context, channelID, messageID int64) error {
	return nil
}

func (f *fakeGateway) AddReaction(ctx context.Context, channelID, messageID int64, emoji string) error {
	return nil
}

func (f *fakeGateway) FetchMember(ctx context.Context, chatID, userID int64) (gateway.Member, error) {
	return gateway.Member{}, common.ErrMemberNotFound
}

func (f *fakeGateway) SendDocument(ctx context.Context, channelID int64, filename string, data io.Reader, caption string) error {
	return nil
}

func (f *fakeGateway) sentMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

// fakeMessages serves archived messages.
type fakeMessages struct {
	messages map[int64]*archive.Message
}

func (f *fakeMessages) Get(ctx context.Context, chatID, messageID int64) (*archive.Message, error) {
	m, ok := f.messages[messageID]
	if !ok {
		return nil, common.ErrMessageNotArchived
	}
	return m, nil
}

// fakeResolver resolves only the ids it was given names for.
type fakeResolver struct {
	names map[int64]string
}

func (f *fakeResolver) Resolve(ctx context.Context, chatID, userID int64) gateway.Identity {
	if name, ok := f.names[userID]; ok {
		return gateway.Identity{UserID: userID, Known: true, DisplayName: name}
	}
	return gateway.Identity{UserID: userID}
}

type grantFixture struct {
	gw       *fakeGateway
	repo     *fakeLedger
	handler  *points.Handler
	resolver *fakeResolver
}

func newGrantFixture(authorID int64) *grantFixture {
	gw := &fakeGateway{}
	repo := &fakeLedger{grantTotal: 1, balances: map[int64]int64{}}
	messages := &fakeMessages{messages: map[int64]*archive.Message{
		messageID: {ChatID: chatID, MessageID: messageID, AuthorID: authorID, AuthorName: "Bob", Content: "nice work"},
	}}
	resolver := &fakeResolver{names: map[int64]string{authorID: "Bob"}}
	handler := points.NewHandler(points.NewService(repo), gw, messages, resolver, 0, 0)
	return &grantFixture{gw: gw, repo: repo, handler: handler, resolver: resolver}
}

func grantEvent(userID int64) gateway.ReactionEvent {
	return gateway.ReactionEvent{
		GuildID:   chatID,
		ChannelID: chatID,
		MessageID: messageID,
		UserID:    userID,
		Emoji:     "👍",
	}
}

func TestHandleGrantSuccess(t *testing.T) {
	fx := newGrantFixture(200)
	fx.resolver.names[100] = "Alice"
	fx.repo.grantTotal = 3

	fx.handler.HandleGrant(context.Background(), grantEvent(100))

	sent := fx.gw.sentMessages()
	assert.Len(t, sent, 1)
	assert.Contains(t, sent[0], "Bob")
	assert.Contains(t, sent[0], "Alice")
	assert.Contains(t, sent[0], "3 points")
}

func TestHandleGrantUnknownGiverGetsFallbackLabel(t *testing.T) {
	fx := newGrantFixture(200)
	// giver 100 has no resolvable identity

	fx.handler.HandleGrant(context.Background(), grantEvent(100))

	sent := fx.gw.sentMessages()
	assert.Len(t, sent, 1)
	assert.Contains(t, sent[0], "user 100")
	assert.Equal(t, 1, fx.repo.grantCalls)
}

func TestHandleGrantUnknownReceiverAborts(t *testing.T) {
	fx := newGrantFixture(200)
	delete(fx.resolver.names, 200)

	fx.handler.HandleGrant(context.Background(), grantEvent(100))

	assert.Empty(t, fx.gw.sentMessages())
	assert.Zero(t, fx.repo.grantCalls, "no grant without a resolvable receiver")
}

func TestHandleGrantDuplicateIsSilent(t *testing.T) {
	fx := newGrantFixture(200)
	fx.repo.grantErr = common.ErrDuplicateGrant

	fx.handler.HandleGrant(context.Background(), grantEvent(100))

	assert.Empty(t, fx.gw.sentMessages(), "duplicate grants must not produce a visible error")
}

func TestHandleGrantSelfGrantShowsError(t *testing.T) {
	fx := newGrantFixture(100) // reacting user is also the author

	fx.handler.HandleGrant(context.Background(), grantEvent(100))

	sent := fx.gw.sentMessages()
	assert.Len(t, sent, 1)
	assert.Contains(t, sent[0], "❌")
}

func TestHandleGrantUnarchivedMessageIsIgnored(t *testing.T) {
	fx := newGrantFixture(200)

	ev := grantEvent(100)
	ev.MessageID = 999 // never archived

	fx.handler.HandleGrant(context.Background(), ev)

	assert.Empty(t, fx.gw.sentMessages())
	assert.Zero(t, fx.repo.grantCalls)
}

func TestHandleCheckShowsOwnTotal(t *testing.T) {
	fx := newGrantFixture(200)
	fx.resolver.names[100] = "Alice"
	fx.repo.balances = map[int64]int64{100: 7}

	fx.handler.HandleCheck(context.Background(), grantEvent(100))

	sent := fx.gw.sentMessages()
	assert.Len(t, sent, 1)
	assert.Contains(t, sent[0], "Alice")
	assert.Contains(t, sent[0], "7 points")
}

func TestHandleCheckUnresolvableActorIsSilent(t *testing.T) {
	fx := newGrantFixture(200)

	fx.handler.HandleCheck(context.Background(), grantEvent(100))

	assert.Empty(t, fx.gw.sentMessages())
}

// ensure the ephemeral path still works with a real TTL
func TestHandleCheckWithTTLSchedulesCleanup(t *testing.T) {
	gw := &fakeGateway{}
	repo := &fakeLedger{balances: map[int64]int64{100: 1}}
	resolver := &fakeResolver{names: map[int64]string{100: "Alice"}}
	handler := points.NewHandler(points.NewService(repo), gw, &fakeMessages{}, resolver, 5*time.Millisecond, 5*time.Millisecond)

	handler.HandleCheck(context.Background(), grantEvent(100))

	assert.Len(t, gw.sentMessages(), 1)
}
