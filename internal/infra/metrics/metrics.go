package infra_metrics

import (
	"github.com/humanbelnik/kinoswipe/internal/model"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts room and swipe events. It satisfies the observer
// interfaces of the room and swipe usecases.
type Collector struct {
	roomsCreated prometheus.Counter
	roomsJoined  prometheus.Counter
	roomsExpired prometheus.Counter
	swipes       *prometheus.CounterVec
	matches      prometheus.Counter
}

func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		roomsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kinoswipe",
			Name:      "rooms_created_total",
			Help:      "Rooms created by hosts.",
		}),
		roomsJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kinoswipe",
			Name:      "rooms_joined_total",
			Help:      "Successful joins by pairing code.",
		}),
		roomsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kinoswipe",
			Name:      "rooms_expired_total",
			Help:      "Idle rooms removed by the sweep.",
		}),
		swipes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kinoswipe",
			Name:      "swipes_total",
			Help:      "Swipes appended to the ledger.",
		}, []string{"direction"}),
		matches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kinoswipe",
			Name:      "matches_total",
			Help:      "Matches materialized.",
		}),
	}
	reg.MustRegister(c.roomsCreated, c.roomsJoined, c.roomsExpired, c.swipes, c.matches)
	return c
}

func (c *Collector) RoomCreated() { c.roomsCreated.Inc() }

func (c *Collector) RoomJoined() { c.roomsJoined.Inc() }

func (c *Collector) RoomsExpired(n int64) { c.roomsExpired.Add(float64(n)) }

func (c *Collector) SwipeRecorded(direction model.Direction) {
	c.swipes.WithLabelValues(string(direction)).Inc()
}

func (c *Collector) MatchFound() { c.matches.Inc() }
