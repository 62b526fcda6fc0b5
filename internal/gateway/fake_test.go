package gateway_test

import (
	"context"
	"io"
	"sync"

	"ledgerbot/internal/common"
	"ledgerbot/internal/gateway"
)

// fakeClient records gateway calls for assertions.
type fakeClient struct {
	mu sync.Mutex

	members map[int64]gateway.Member

	sent       []string
	nextMsgID  int64
	deleted    []int64
	sendErr    error
	memberErrs map[int64]error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		members:    make(map[int64]gateway.Member),
		memberErrs: make(map[int64]error),
		nextMsgID:  1000,
	}
}

func (f *fakeClient) SendMessage(ctx context.Context, channelID int64, text string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.nextMsgID++
	f.sent = append(f.sent, text)
	return f.nextMsgID, nil
}

func (f *fakeClient) DeleteMessage(ctx context.Context, channelID, messageID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeClient) AddReaction(ctx context.Context, channelID, messageID int64, emoji string) error {
	return nil
}

func (f *fakeClient) FetchMember(ctx context.Context, chatID, userID int64) (gateway.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.memberErrs[userID]; ok {
		return gateway.Member{}, err
	}
	m, ok := f.members[userID]
	if !ok {
		return gateway.Member{}, common.ErrMemberNotFound
	}
	return m, nil
}

func (f *fakeClient) SendDocument(ctx context.Context, channelID int64, filename string, data io.Reader, caption string) error {
	return nil
}

func (f *fakeClient) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeClient) deletedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deleted)
}
