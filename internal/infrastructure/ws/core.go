package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/meetzone/meetzone/internal/domain"
	"github.com/meetzone/meetzone/internal/infrastructure/logging"
)

// Core fans the world clock out to every attached client. One goroutine
// owns the client set; register, unregister and the tick all funnel
// through its select loop, so no handler ever touches the map directly.
type Core struct {
	countries    []domain.Country // immutable directory snapshot
	tickInterval time.Duration

	register   chan *Client
	unregister chan *Client
	clients    map[string]*Client

	upgrader websocket.Upgrader
	logger   logging.Logger
	gauge    prometheus.Gauge
}

func NewCore(countries []domain.Country, tickInterval time.Duration, logger logging.Logger, gauge prometheus.Gauge) *Core {
	if tickInterval <= 0 {
		tickInterval = time.Second
	}

	return &Core{
		countries:    countries,
		tickInterval: tickInterval,
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		clients:      make(map[string]*Client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
		gauge:  gauge,
	}
}

// Run drives the feed until ctx is cancelled. The ticker recomputes the
// clock entries each interval and stops with the context, so no timer
// outlives the owning server.
func (c *Core) Run(ctx context.Context) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	c.logger.Info(logging.WorldClock, logging.Startup, "world clock feed started", map[logging.ExtraKey]any{
		"countries": len(c.countries),
		"interval":  c.tickInterval.String(),
	})

	for {
		select {
		case cl := <-c.register:
			c.clients[cl.ID] = cl
			if c.gauge != nil {
				c.gauge.Set(float64(len(c.clients)))
			}

			now := time.Now()
			cl.Message <- NewClockSnapshot(SnapshotEntries(c.countries, now), now)

		case cl := <-c.unregister:
			if _, ok := c.clients[cl.ID]; ok {
				delete(c.clients, cl.ID)
				close(cl.Message)
				if c.gauge != nil {
					c.gauge.Set(float64(len(c.clients)))
				}
			}

		case now := <-ticker.C:
			if len(c.clients) == 0 {
				continue
			}
			c.send(NewClockTick(SnapshotEntries(c.countries, now), now))

		case <-ctx.Done():
			// Tell attached clients the feed is going away before the
			// channels close under them.
			c.send(NewError("world clock feed shutting down"))
			for _, cl := range c.clients {
				close(cl.Message)
			}
			c.clients = make(map[string]*Client)
			c.logger.Info(logging.WorldClock, logging.Shutdown, "world clock feed stopped", nil)
			return
		}
	}
}

func (c *Core) send(msg *FeedMessage) {
	for _, cl := range c.clients {
		select {
		case cl.Message <- msg:
		default:
			// Client is too slow, drop the frame
			c.logger.Debug(logging.WorldClock, logging.Broadcast, "client buffer full, dropping frame", map[logging.ExtraKey]any{
				"client": cl.ID,
			})
		}
	}
}

func (c *Core) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return c.upgrader.Upgrade(w, r, nil)
}

func (c *Core) Register() chan<- *Client {
	return c.register
}

func (c *Core) Unregister() chan<- *Client {
	return c.unregister
}
