package openai

import (
	"context"
	"errors"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// fakeModel is a scripted llms.Model. Each GenerateContent call consumes the
// next reply; the last reply repeats once the script runs out.
type fakeModel struct {
	mu       sync.Mutex
	replies  []fakeReply
	calls    int
	lastOpts llms.CallOptions
	lastMsgs []llms.MessageContent
}

type fakeReply struct {
	content string
	err     error
	empty   bool
	before  func() // runs before the reply is returned
}

func newFakeModel(replies ...fakeReply) *fakeModel {
	return &fakeModel{replies: replies}
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var opts llms.CallOptions
	for _, opt := range options {
		opt(&opts)
	}
	f.lastOpts = opts
	f.lastMsgs = messages

	if len(f.replies) == 0 {
		f.calls++
		return nil, errors.New("no scripted reply")
	}
	idx := min(f.calls, len(f.replies)-1)
	f.calls++
	reply := f.replies[idx]
	if reply.before != nil {
		reply.before()
	}
	if reply.err != nil {
		return nil, reply.err
	}
	if reply.empty {
		return &llms.ContentResponse{}, nil
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: reply.content}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func (f *fakeModel) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
