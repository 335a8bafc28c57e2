package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/grammalecte-api/internal/domain"
	"github.com/heartmarshall/grammalecte-api/internal/service/checker"
)

var _ checkService = &checkServiceMock{}

type checkServiceMock struct {
	CheckFunc   func(ctx context.Context, in checker.CheckInput) (*domain.CheckResult, error)
	SuggestFunc func(ctx context.Context, in checker.SuggestInput) ([]string, error)
	OptionsFunc func(ctx context.Context) (*checker.OptionsReport, error)

	calls struct {
		Check []struct {
			Ctx context.Context
			In  checker.CheckInput
		}
		Suggest []struct {
			Ctx context.Context
			In  checker.SuggestInput
		}
		Options []struct {
			Ctx context.Context
		}
	}
	lockCheck   sync.RWMutex
	lockSuggest sync.RWMutex
	lockOptions sync.RWMutex
}

func (mock *checkServiceMock) Check(ctx context.Context, in checker.CheckInput) (*domain.CheckResult, error) {
	if mock.CheckFunc == nil {
		panic("checkServiceMock.CheckFunc: method is nil but checkService.Check was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  checker.CheckInput
	}{Ctx: ctx, In: in}
	mock.lockCheck.Lock()
	mock.calls.Check = append(mock.calls.Check, callInfo)
	mock.lockCheck.Unlock()
	return mock.CheckFunc(ctx, in)
}

func (mock *checkServiceMock) CheckCalls() []struct {
	Ctx context.Context
	In  checker.CheckInput
} {
	mock.lockCheck.RLock()
	defer mock.lockCheck.RUnlock()
	return mock.calls.Check
}

func (mock *checkServiceMock) Suggest(ctx context.Context, in checker.SuggestInput) ([]string, error) {
	if mock.SuggestFunc == nil {
		panic("checkServiceMock.SuggestFunc: method is nil but checkService.Suggest was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  checker.SuggestInput
	}{Ctx: ctx, In: in}
	mock.lockSuggest.Lock()
	mock.calls.Suggest = append(mock.calls.Suggest, callInfo)
	mock.lockSuggest.Unlock()
	return mock.SuggestFunc(ctx, in)
}

func (mock *checkServiceMock) SuggestCalls() []struct {
	Ctx context.Context
	In  checker.SuggestInput
} {
	mock.lockSuggest.RLock()
	defer mock.lockSuggest.RUnlock()
	return mock.calls.Suggest
}

func (mock *checkServiceMock) Options(ctx context.Context) (*checker.OptionsReport, error) {
	if mock.OptionsFunc == nil {
		panic("checkServiceMock.OptionsFunc: method is nil but checkService.Options was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockOptions.Lock()
	mock.calls.Options = append(mock.calls.Options, callInfo)
	mock.lockOptions.Unlock()
	return mock.OptionsFunc(ctx)
}

func (mock *checkServiceMock) OptionsCalls() []struct {
	Ctx context.Context
} {
	mock.lockOptions.RLock()
	defer mock.lockOptions.RUnlock()
	return mock.calls.Options
}
