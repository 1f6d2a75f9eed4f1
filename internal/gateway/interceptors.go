package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/messmgmt/mess-console/internal/core/domain"
	"github.com/messmgmt/mess-console/internal/core/ports"
)

// Doer is the transport-shaped seam the interceptors compose around.
// *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

type storeKey struct{}

// ContextWithStore binds the calling context's session store so the
// interceptor chain can read the credential and, on rejection, clear it.
// Requests issued without a bound store travel unauthenticated.
func ContextWithStore(ctx context.Context, store ports.SessionStore) context.Context {
	return context.WithValue(ctx, storeKey{}, store)
}

func storeFrom(ctx context.Context) ports.SessionStore {
	store, _ := ctx.Value(storeKey{}).(ports.SessionStore)
	return store
}

// InvalidationFunc is notified when the backend rejected the credential and
// the session has been cleared. The router layer translates this into the
// redirect-to-login behaviour; the gateway itself never navigates.
type InvalidationFunc func(ctx context.Context, s *domain.Session)

// ObserveFunc receives one data point per transmitted request.
type ObserveFunc func(method string, status int, elapsed time.Duration)

// AttachCredentials returns a Doer that sets the Authorization header from
// the live session before handing the request to next. Without a live
// session the request is sent unmodified; the login endpoint relies on this.
func AttachCredentials(next Doer) Doer {
	return DoerFunc(func(req *http.Request) (*http.Response, error) {
		if store := storeFrom(req.Context()); store != nil {
			session, err := store.Current(req.Context())
			if err != nil {
				return nil, err
			}
			if session.Valid() {
				req = req.Clone(req.Context())
				req.Header.Set("Authorization", "Bearer "+session.Token)
			}
		}
		return next.Do(req)
	})
}

// HandleRejection returns a Doer that watches responses for an
// authentication rejection. On 401 it clears the bound session store and
// notifies exactly once for that response, then passes the response through
// unchanged so the caller still sees the original outcome. Other in-flight
// requests are unaffected; they complete and surface their own result.
func HandleRejection(notify InvalidationFunc, next Doer) Doer {
	return DoerFunc(func(req *http.Request) (*http.Response, error) {
		resp, err := next.Do(req)
		if err != nil || resp.StatusCode != http.StatusUnauthorized {
			return resp, err
		}

		ctx := req.Context()
		store := storeFrom(ctx)
		if store == nil {
			return resp, nil
		}

		rejected, _ := store.Current(ctx)
		_ = store.Clear(ctx)
		if notify != nil {
			notify(ctx, rejected)
		}
		return resp, nil
	})
}

// Instrument returns a Doer reporting method, status and latency of every
// transmitted request to observe. Transport failures report status 0.
func Instrument(observe ObserveFunc, next Doer) Doer {
	if observe == nil {
		return next
	}
	return DoerFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.Do(req)
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		observe(req.Method, status, time.Since(start))
		return resp, err
	})
}
