package sessionkit_test

import (
	"context"
	"fmt"
	"time"

	"github.com/tracknest/sessionkit"
	"github.com/tracknest/sessionkit/storage/cookiestore"
	"github.com/tracknest/sessionkit/storage/memstore"
)

// Example demonstrates the basic waterfall: the first call mints everything,
// the second call within the timeout keeps client and session.
func Example() {
	tracker := sessionkit.New(
		sessionkit.WithSessionTimeout(30 * time.Minute),
	)
	store := memstore.New()
	ctx := context.Background()

	first, _ := tracker.Process(ctx, store)
	fmt.Println(first.Changes.NewClient, first.Changes.NewSession, first.New.Sequence)

	second, _ := tracker.Process(ctx, store)
	fmt.Println(second.Changes.NewClient, second.Changes.NewSession, second.New.Sequence)

	// Output:
	// true true 1-1
	// false false 1-2
}

// Example_cookies shows the request/response-scoped server flow: state rides
// entirely in cookie headers, so concurrent requests never share mutable
// storage.
func Example_cookies() {
	tracker := sessionkit.New()
	ctx := context.Background()

	// First request arrives with no cookies.
	store := cookiestore.New("")
	result, _ := tracker.Process(ctx, store)
	fmt.Println(result.Changes.NewClient)

	// Attach store.SetCookies() to the response; the browser sends the
	// values back on the next request's Cookie header.
	fmt.Println(len(store.SetCookies()))

	// Output:
	// true
	// 4
}
