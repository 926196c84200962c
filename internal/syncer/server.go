package syncer

import (
	"bufio"
	"errors"
	"log"
	"net"
	"sync"
)

// FeedServer serves the community feed over plain TCP, one JSON object per
// line, for tooling that does not speak websockets.
type FeedServer struct {
	Addr string
	Hub  *Hub

	mu sync.Mutex
	ln net.Listener
}

func NewFeedServer(addr string, hub *Hub) *FeedServer {
	return &FeedServer{Addr: addr, Hub: hub}
}

func (s *FeedServer) Run() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	log.Printf("[feed-tcp] listening on %s", s.Addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			continue
		}

		s.Hub.Add(conn)
		s.Hub.Welcome(conn)
		log.Printf("[feed-tcp] client connected: %s", conn.RemoteAddr())

		go func(c net.Conn) {
			defer func() {
				s.Hub.Remove(c)
				log.Printf("[feed-tcp] client disconnected: %s", c.RemoteAddr())
			}()

			// Keep the connection open; consume anything the client sends.
			sc := bufio.NewScanner(c)
			for sc.Scan() {
			}
		}(conn)
	}
}

func (s *FeedServer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}
