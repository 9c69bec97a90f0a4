package export

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/brutella/dnssd"
	"github.com/charmbracelet/log"

	"meteorscatter/gravesdet/derive"
	gravesdet "meteorscatter/gravesdet/src"
)

// dnssdServiceType is the mDNS/DNS-SD service type chirp export announces
// itself as, mirroring the teacher's _kiss-tnc._tcp convention.
const dnssdServiceType = "_gravesdet._tcp"

// NetServer is a gravesdet.Sink that broadcasts each chirp, serialized as
// one line of JSON, to every currently connected TCP client. Writes are
// synchronous and have no deadline, so a client that stops reading can
// block OnChirp, and with it Feed; a client whose write returns an error is
// disconnected.
type NetServer struct {
	carrierHz float64
	logger    *log.Logger

	mu      sync.Mutex
	clients map[net.Conn]struct{}
}

// NewNetServer creates a server ready to Listen. carrierHz feeds the
// attached Doppler series the same way Archiver's does.
func NewNetServer(carrierHz float64, logger *log.Logger) *NetServer {
	if logger == nil {
		logger = discardLogger()
	}
	return &NetServer{
		carrierHz: carrierHz,
		logger:    logger,
		clients:   make(map[net.Conn]struct{}),
	}
}

// Listen starts accepting TCP clients on addr (e.g. ":7373") in the
// background and returns once the socket is bound. Accepts continue until
// the listener is closed.
func (n *NetServer) Listen(addr string) (net.Listener, error) {
	var listener, err = net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("gravesdet export: listen on %s: %w", addr, err)
	}

	go n.acceptLoop(listener)

	return listener, nil
}

func (n *NetServer) acceptLoop(listener net.Listener) {
	for {
		var conn, err = listener.Accept()
		if err != nil {
			n.logger.Info("export listener closed", "err", err)
			return
		}

		n.mu.Lock()
		n.clients[conn] = struct{}{}
		n.mu.Unlock()

		n.logger.Info("export client connected", "remote", conn.RemoteAddr())
	}
}

// Advertise registers the export service over mDNS/DNS-SD so LAN clients
// can discover it without a configured address, the way the teacher
// advertises its KISS TCP service.
func (n *NetServer) Advertise(ctx context.Context, name string, port int) error {
	var cfg = dnssd.Config{
		Name: name,
		Type: dnssdServiceType,
		Port: port,
	}

	var sv, svErr = dnssd.NewService(cfg)
	if svErr != nil {
		return fmt.Errorf("gravesdet export: create dnssd service: %w", svErr)
	}

	var rp, rpErr = dnssd.NewResponder()
	if rpErr != nil {
		return fmt.Errorf("gravesdet export: create dnssd responder: %w", rpErr)
	}

	if _, err := rp.Add(sv); err != nil {
		return fmt.Errorf("gravesdet export: add dnssd service: %w", err)
	}

	go func() {
		if err := rp.Respond(ctx); err != nil {
			n.logger.Error("dnssd responder stopped", "err", err)
		}
	}()

	n.logger.Info("advertising export service", "name", name, "type", dnssdServiceType, "port", port)

	return nil
}

// OnChirp implements gravesdet.Sink, broadcasting to every connected
// client. Clients that fail to accept the write are dropped.
func (n *NetServer) OnChirp(record *gravesdet.ChirpRecord) bool {
	var doppler = derive.Doppler(record, n.carrierHz, 0)
	var arrays = derive.ToNamedArrays(record, doppler)

	n.mu.Lock()
	defer n.mu.Unlock()

	for conn := range n.clients {
		if err := derive.WriteJSON(conn, arrays); err != nil {
			n.logger.Warn("export client write failed, dropping", "remote", conn.RemoteAddr(), "err", err)
			conn.Close()
			delete(n.clients, conn)
		}
	}

	return true
}
