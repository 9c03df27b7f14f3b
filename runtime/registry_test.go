package runtime

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"conclave/agent"
	"conclave/domain"
	"conclave/mocks"
)

func testHandle(id string) *handle {
	return &handle{
		session: domain.NewSession(id, time.Now()),
		agents:  make(map[string]*agent.Agent),
		rng:     rand.New(rand.NewSource(1)),
	}
}

func TestRegistry_AddLookupRemove(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	h := testHandle("s1")
	req.True(registry.add(h))
	req.Equal(1, registry.Count())

	// A second handle with the same id is refused.
	req.False(registry.add(testHandle("s1")))

	got, ok := registry.lookup("s1")
	req.True(ok)
	req.Same(h, got)

	registry.remove("s1")
	req.Equal(0, registry.Count())
	_, ok = registry.lookup("s1")
	req.False(ok)
}

func TestRegistry_SubscriberLifecycle(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockEventSink(ctrl)
	other := mocks.NewMockEventSink(ctrl)

	registry.Subscribe("s1", "p1", sink)
	registry.Subscribe("s1", "p2", other)
	req.Len(registry.SinksFor("s1"), 2)
	req.Empty(registry.SinksFor("s2"))

	registry.Unsubscribe("s1", "p1")
	req.Len(registry.SinksFor("s1"), 1)

	registry.Unsubscribe("s1", "p2")
	req.Empty(registry.SinksFor("s1"))
}

func TestRegistry_RemoveDropsSubscribers(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req.True(registry.add(testHandle("s1")))
	registry.Subscribe("s1", "p1", mocks.NewMockEventSink(ctrl))

	registry.remove("s1")
	req.Empty(registry.SinksFor("s1"))
}
