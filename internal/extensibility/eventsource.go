package extensibility

import (
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorhill/cronexpr"
	"github.com/gorilla/websocket"

	"statechartx/internal/core"
)

// EventSource produces external events to be fed into an Interpreter's
// Send. internal/core has no notion of an EventSource; Pump is the glue
// that drains one into an Interpreter, matching spec.md §6's description
// of external I/O as adapters outside the core.
type EventSource interface {
	Events() <-chan core.Event
}

// Pump ranges over src's channel, calling ip.Send for each event, until the
// channel closes or stop fires.
func Pump(ip *core.Interpreter, src EventSource, stop <-chan struct{}) {
	events := src.Events()
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			_ = ip.Send(e.Name, e.Data)
		case <-stop:
			return
		}
	}
}

// ChannelEventSource is an EventSource backed by a Go channel, generalized
// from the teacher's internal/extensibility/eventsource.go of the same
// name (there backed by primitives.Event).
type ChannelEventSource struct {
	ch chan core.Event
}

// NewChannelEventSource creates a new ChannelEventSource with the given channel.
// The channel should be buffered if backpressure handling is needed.
func NewChannelEventSource(ch chan core.Event) *ChannelEventSource {
	return &ChannelEventSource{ch: ch}
}

func (s *ChannelEventSource) Events() <-chan core.Event {
	return s.ch
}

// TimerEventSource generates periodic events using time.Ticker, unchanged
// in shape from the teacher's version of the same name.
type TimerEventSource struct {
	ch        chan core.Event
	eventType string
	data      any
	ticker    *time.Ticker
	stop      chan struct{}
}

// NewTimerEventSource creates a TimerEventSource that emits events every d duration.
func NewTimerEventSource(eventType string, data any, d time.Duration) *TimerEventSource {
	t := &TimerEventSource{
		ch:        make(chan core.Event, 10),
		eventType: eventType,
		data:      data,
		ticker:    time.NewTicker(d),
		stop:      make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TimerEventSource) run() {
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- core.NewExternalEvent(t.eventType, t.data):
			default:
				// drop if full
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

func (t *TimerEventSource) Events() <-chan core.Event {
	return t.ch
}

// Stop stops the ticker and closes the channel.
func (t *TimerEventSource) Stop() {
	close(t.stop)
}

// CronEventSource raises eventType on every cronexpr-scheduled tick, for
// hosts wiring scheduled sends without a <data> datamodel of their own
// (spec.md §10's scheduling row). Uses github.com/gorhill/cronexpr,
// adopted from the rest of the retrieval pack since the teacher has no
// scheduling adapter of its own.
type CronEventSource struct {
	ch        chan core.Event
	eventType string
	data      any
	expr      *cronexpr.Expression
	stop      chan struct{}
}

func NewCronEventSource(schedule, eventType string, data any) (*CronEventSource, error) {
	expr, err := cronexpr.Parse(schedule)
	if err != nil {
		return nil, err
	}
	c := &CronEventSource{
		ch:        make(chan core.Event, 10),
		eventType: eventType,
		data:      data,
		expr:      expr,
		stop:      make(chan struct{}),
	}
	go c.run()
	return c, nil
}

func (c *CronEventSource) run() {
	for {
		next := c.expr.Next(time.Now())
		if next.IsZero() {
			close(c.ch)
			return
		}
		timer := time.NewTimer(time.Until(next))
		select {
		case <-timer.C:
			select {
			case c.ch <- core.NewExternalEvent(c.eventType, c.data):
			default:
			}
		case <-c.stop:
			timer.Stop()
			close(c.ch)
			return
		}
	}
}

func (c *CronEventSource) Events() <-chan core.Event {
	return c.ch
}

func (c *CronEventSource) Stop() {
	close(c.stop)
}

// MQTTEventSource subscribes to an MQTT topic and turns each message into
// an external event named eventType, with the raw payload bytes as Data.
// Grounded on the pack's github.com/eclipse/paho.mqtt.golang dependency
// (spec.md §10's messaging-transport row).
type MQTTEventSource struct {
	ch        chan core.Event
	client    mqtt.Client
	eventType string
}

func NewMQTTEventSource(opts *mqtt.ClientOptions, topic, eventType string) (*MQTTEventSource, error) {
	s := &MQTTEventSource{
		ch:        make(chan core.Event, 32),
		eventType: eventType,
	}
	opts.SetDefaultPublishHandler(func(_ mqtt.Client, msg mqtt.Message) {
		select {
		case s.ch <- core.NewExternalEvent(s.eventType, msg.Payload()):
		default:
		}
	})
	s.client = mqtt.NewClient(opts)
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	if token := s.client.Subscribe(topic, 0, nil); token.Wait() && token.Error() != nil {
		s.client.Disconnect(250)
		return nil, token.Error()
	}
	return s, nil
}

func (s *MQTTEventSource) Events() <-chan core.Event {
	return s.ch
}

func (s *MQTTEventSource) Stop() {
	s.client.Disconnect(250)
	close(s.ch)
}

// WebSocketEventSource decodes each inbound JSON message on a
// gorilla/websocket connection as {"name": "...", "data": ...} and forwards
// it as an external event. Grounded on the pack's
// github.com/gorilla/websocket dependency (spec.md §10's realtime-transport
// row).
type WebSocketEventSource struct {
	ch   chan core.Event
	conn *websocket.Conn
}

func NewWebSocketEventSource(conn *websocket.Conn) *WebSocketEventSource {
	s := &WebSocketEventSource{
		ch:   make(chan core.Event, 32),
		conn: conn,
	}
	go s.run()
	return s
}

type wsEventPayload struct {
	Name string `json:"name"`
	Data any    `json:"data"`
}

func (s *WebSocketEventSource) run() {
	defer close(s.ch)
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var payload wsEventPayload
		if err := json.Unmarshal(raw, &payload); err != nil || payload.Name == "" {
			continue
		}
		select {
		case s.ch <- core.NewExternalEvent(payload.Name, payload.Data):
		default:
		}
	}
}

func (s *WebSocketEventSource) Events() <-chan core.Event {
	return s.ch
}
