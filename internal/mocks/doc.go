// Package mocks provides function-field fakes of the service and client
// interfaces consumed by the HTTP layer.
//
// Each mock exposes one XxxFn field per method; an unset field falls back to
// a harmless zero result so tests only stub what they exercise:
//
//	tasks := &mocks.MockTaskService{
//	    GetTaskFn: func(ctx context.Context, id string) (domain.Task, error) {
//	        return domain.Task{}, service.ErrTaskNotFound
//	    },
//	}
//
// Some mocks also record calls (MockTaskService.CallCount,
// MockAccountService.LastLogoutToken) for assertions on side effects.
package mocks
