package checker

import (
	"context"
	"sync"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
)

var _ grammarEngine = &grammarEngineMock{}

type grammarEngineMock struct {
	CheckParagraphFunc func(ctx context.Context, index int, paragraph string, opts domain.OptionSet, returnText bool) ([]byte, error)
	SuggestFunc        func(ctx context.Context, token string) ([][]string, error)
	InfoFunc           func(ctx context.Context) (domain.EngineInfo, error)
	OptionsFunc        func(ctx context.Context) (domain.OptionSet, error)
	DefaultOptionsFunc func(ctx context.Context) (domain.OptionSet, error)

	calls struct {
		CheckParagraph []struct {
			Index      int
			Paragraph  string
			Opts       domain.OptionSet
			ReturnText bool
		}
		Suggest []struct {
			Token string
		}
	}
	lockCheckParagraph sync.RWMutex
	lockSuggest        sync.RWMutex
}

func (mock *grammarEngineMock) CheckParagraph(ctx context.Context, index int, paragraph string, opts domain.OptionSet, returnText bool) ([]byte, error) {
	if mock.CheckParagraphFunc == nil {
		panic("grammarEngineMock.CheckParagraphFunc: method is nil but grammarEngine.CheckParagraph was just called")
	}
	callInfo := struct {
		Index      int
		Paragraph  string
		Opts       domain.OptionSet
		ReturnText bool
	}{Index: index, Paragraph: paragraph, Opts: opts, ReturnText: returnText}
	mock.lockCheckParagraph.Lock()
	mock.calls.CheckParagraph = append(mock.calls.CheckParagraph, callInfo)
	mock.lockCheckParagraph.Unlock()
	return mock.CheckParagraphFunc(ctx, index, paragraph, opts, returnText)
}

func (mock *grammarEngineMock) CheckParagraphCalls() []struct {
	Index      int
	Paragraph  string
	Opts       domain.OptionSet
	ReturnText bool
} {
	mock.lockCheckParagraph.RLock()
	calls := mock.calls.CheckParagraph
	mock.lockCheckParagraph.RUnlock()
	return calls
}

func (mock *grammarEngineMock) Suggest(ctx context.Context, token string) ([][]string, error) {
	if mock.SuggestFunc == nil {
		panic("grammarEngineMock.SuggestFunc: method is nil but grammarEngine.Suggest was just called")
	}
	mock.lockSuggest.Lock()
	mock.calls.Suggest = append(mock.calls.Suggest, struct{ Token string }{Token: token})
	mock.lockSuggest.Unlock()
	return mock.SuggestFunc(ctx, token)
}

func (mock *grammarEngineMock) SuggestCalls() []struct{ Token string } {
	mock.lockSuggest.RLock()
	calls := mock.calls.Suggest
	mock.lockSuggest.RUnlock()
	return calls
}

func (mock *grammarEngineMock) Info(ctx context.Context) (domain.EngineInfo, error) {
	if mock.InfoFunc == nil {
		panic("grammarEngineMock.InfoFunc: method is nil but grammarEngine.Info was just called")
	}
	return mock.InfoFunc(ctx)
}

func (mock *grammarEngineMock) Options(ctx context.Context) (domain.OptionSet, error) {
	if mock.OptionsFunc == nil {
		panic("grammarEngineMock.OptionsFunc: method is nil but grammarEngine.Options was just called")
	}
	return mock.OptionsFunc(ctx)
}

func (mock *grammarEngineMock) DefaultOptions(ctx context.Context) (domain.OptionSet, error) {
	if mock.DefaultOptionsFunc == nil {
		panic("grammarEngineMock.DefaultOptionsFunc: method is nil but grammarEngine.DefaultOptions was just called")
	}
	return mock.DefaultOptionsFunc(ctx)
}

var _ paragraphCache = &paragraphCacheMock{}

type paragraphCacheMock struct {
	GetFunc func(ctx context.Context, key string) ([]byte, bool, error)
	SetFunc func(ctx context.Context, key string, payload []byte) error

	calls struct {
		Get []struct {
			Key string
		}
		Set []struct {
			Key     string
			Payload []byte
		}
	}
	lockGet sync.RWMutex
	lockSet sync.RWMutex
}

func (mock *paragraphCacheMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if mock.GetFunc == nil {
		panic("paragraphCacheMock.GetFunc: method is nil but paragraphCache.Get was just called")
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, struct{ Key string }{Key: key})
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, key)
}

func (mock *paragraphCacheMock) GetCalls() []struct{ Key string } {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *paragraphCacheMock) Set(ctx context.Context, key string, payload []byte) error {
	if mock.SetFunc == nil {
		panic("paragraphCacheMock.SetFunc: method is nil but paragraphCache.Set was just called")
	}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, struct {
		Key     string
		Payload []byte
	}{Key: key, Payload: payload})
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, key, payload)
}

func (mock *paragraphCacheMock) SetCalls() []struct {
	Key     string
	Payload []byte
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}

var _ checkRecorder = &checkRecorderMock{}

type checkRecorderMock struct {
	RecordFunc func(ctx context.Context, rec domain.CheckRecord) error

	calls struct {
		Record []struct {
			Rec domain.CheckRecord
		}
	}
	lockRecord sync.RWMutex
}

func (mock *checkRecorderMock) Record(ctx context.Context, rec domain.CheckRecord) error {
	if mock.RecordFunc == nil {
		panic("checkRecorderMock.RecordFunc: method is nil but checkRecorder.Record was just called")
	}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, struct{ Rec domain.CheckRecord }{Rec: rec})
	mock.lockRecord.Unlock()
	return mock.RecordFunc(ctx, rec)
}

func (mock *checkRecorderMock) RecordCalls() []struct{ Rec domain.CheckRecord } {
	mock.lockRecord.RLock()
	calls := mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}
