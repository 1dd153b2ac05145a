package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/piresc/roadassist/internal/pkg/models"
	natspkg "github.com/piresc/roadassist/internal/pkg/nats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNATSRelay_DeliversAcrossNodes(t *testing.T) {
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	s := natsserver.RunServer(&opts)
	defer s.Shutdown()

	nodeA, err := natspkg.NewClient(s.ClientURL(), "node-a")
	require.NoError(t, err)
	defer nodeA.Close()
	nodeB, err := natspkg.NewClient(s.ClientURL(), "node-b")
	require.NoError(t, err)
	defer nodeB.Close()

	routerA, routerB := NewRouter(), NewRouter()
	relayA := NewNATSRelay(nodeA, "a")
	relayB := NewNATSRelay(nodeB, "b")
	require.NoError(t, relayA.Start(routerA))
	require.NoError(t, relayB.Start(routerB))
	defer relayA.Stop()
	defer relayB.Stop()
	require.NoError(t, nodeA.GetConn().Flush())
	require.NoError(t, nodeB.GetConn().Flush())

	room := RequestRoom(uuid.New())
	local := newFakeConn(models.RoleCustomer)
	remote := newFakeConn(models.RoleProvider)
	routerA.Register(local)
	routerB.Register(remote)
	require.NoError(t, routerA.JoinRoom(local.ID(), room))
	require.NoError(t, routerB.JoinRoom(remote.ID(), room))

	n := routerA.Emit(room, "status_changed", map[string]string{"status": "accepted"})
	assert.Equal(t, 1, n)

	require.Eventually(t, func() bool { return len(remote.events()) == 1 }, 2*time.Second, 10*time.Millisecond)
	routerB.Broadcast("new_announcement", struct{}{}, Filter{Role: models.RoleCustomer})
	require.Eventually(t, func() bool { return len(local.events()) == 2 }, 2*time.Second, 10*time.Millisecond)

	// own emits are not delivered twice
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"status_changed", "new_announcement"}, local.events())
	assert.Equal(t, []string{"status_changed"}, remote.events())
}

func TestNATSRelay_EvictsAcrossNodes(t *testing.T) {
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	s := natsserver.RunServer(&opts)
	defer s.Shutdown()

	nodeA, err := natspkg.NewClient(s.ClientURL(), "node-a")
	require.NoError(t, err)
	defer nodeA.Close()
	nodeB, err := natspkg.NewClient(s.ClientURL(), "node-b")
	require.NoError(t, err)
	defer nodeB.Close()

	routerA, routerB := NewRouter(), NewRouter()
	relayA := NewNATSRelay(nodeA, "a")
	relayB := NewNATSRelay(nodeB, "b")
	require.NoError(t, relayA.Start(routerA))
	require.NoError(t, relayB.Start(routerB))
	defer relayA.Stop()
	defer relayB.Stop()
	require.NoError(t, nodeA.GetConn().Flush())
	require.NoError(t, nodeB.GetConn().Flush())

	room := RequestRoom(uuid.New())
	customer := newFakeConn(models.RoleCustomer)
	winner := newFakeConn(models.RoleProvider)
	loser := newFakeConn(models.RoleProvider)
	routerA.Register(customer)
	routerB.Register(winner)
	routerB.Register(loser)
	require.NoError(t, routerA.JoinRoom(customer.ID(), room))
	require.NoError(t, routerB.JoinRoom(winner.ID(), room))
	require.NoError(t, routerB.JoinRoom(loser.ID(), room))

	assert.Equal(t, 0, routerA.EvictExcept(room, customer.userID, winner.userID))

	require.Eventually(t, func() bool { return !routerB.InRoom(loser.ID(), room) }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, routerB.InRoom(winner.ID(), room))
	assert.True(t, routerA.InRoom(customer.ID(), room))
}
