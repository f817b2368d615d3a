// Package server exposes the temporal adapter and the axis layout over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/curtisnewbie/timeaxis/adapter"
	"github.com/curtisnewbie/timeaxis/axis"
	"github.com/curtisnewbie/timeaxis/core"
	"github.com/curtisnewbie/timeaxis/metrics"
	"github.com/curtisnewbie/timeaxis/util/errs"
	"github.com/curtisnewbie/timeaxis/util/opt"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// Pattern of InstantRes.Iso.
const IsoPattern = "YYYY-MM-DDTHH:mm:ss.SSSZ"

// Instant in responses.
type InstantRes struct {
	Value adapter.Instant
	Iso   string // in the calendar's zone, empty for invalid instants
}

// Backend that explains parse failures, e.g., *adapter.Adapter.
type errParser interface {
	ParseErr(value adapter.Input, pattern opt.Opt[string]) (adapter.Instant, error)
}

type Server struct {
	conf   *core.AppConfig
	host   axis.Host
	engine *gin.Engine
}

// Create Server, the adapter is installed as the backend of a new axis.Context.
func NewServer(conf *core.AppConfig, a *adapter.Adapter) *Server {
	host := axis.NewContext()
	host.UseBackend(a)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.CustomRecovery(DefaultRecovery))

	s := &Server{conf: conf, host: host, engine: engine}

	promRoute := conf.GetPropStr(core.PropPromRoute)
	engine.Use(PerfMiddleware(promRoute))
	engine.GET("/formats", NewRouteHandler(s.formats))
	engine.GET("/parse", NewRouteHandler(s.parse))
	engine.GET("/format", NewRouteHandler(s.format))
	engine.GET("/add", NewRouteHandler(s.add))
	engine.GET("/diff", NewRouteHandler(s.diff))
	engine.GET("/start-of", NewRouteHandler(s.startOf))
	engine.GET("/end-of", NewRouteHandler(s.endOf))
	engine.GET("/ticks", NewRouteHandler(s.ticks))
	if conf.GetPropBool(core.PropMetricsEnabled) {
		engine.GET(promRoute, gin.WrapH(metrics.PrometheusHandler()))
		core.Debugf("Registered prometheus endpoint: '%v'", promRoute)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) backend() (axis.Backend, error) {
	b := s.host.Backend()
	if b == nil {
		return nil, errs.ErrNoBackend
	}
	return b, nil
}

func (s *Server) instantRes(b axis.Backend, t adapter.Instant) InstantRes {
	return InstantRes{Value: t, Iso: b.Format(t, IsoPattern)}
}

// Listen on server.host and server.port, and shutdown gracefully when ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%s", s.conf.GetPropStr(core.PropServerHost), s.conf.GetPropStr(core.PropServerPort))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errs.WrapErrf(err, "failed to listen on %v", addr)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		core.Infof("Listening and serving HTTP on %s", ln.Addr())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errs.UnknownErrf(err, "http server exited")
	case <-ctx.Done():
	}

	core.Infof("Shutting down http server gracefully")
	timeout := s.conf.GetPropInt(core.PropServerGracefulShutdownTimeSec)
	if timeout <= 0 {
		timeout = 5
	}
	c, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(c); err != nil {
		return errs.WrapErrf(err, "failed to shutdown http server")
	}
	core.Infof("Http server exited")
	return nil
}

func (s *Server) formats(c *gin.Context) (any, error) {
	b, err := s.backend()
	if err != nil {
		return nil, err
	}
	return b.Formats().Map(), nil
}

// Parse query 'value' as text, or 'epoch' as numeric epoch. Text is parsed strictly when 'pattern' is present.
func (s *Server) parse(c *gin.Context) (any, error) {
	b, err := s.backend()
	if err != nil {
		return nil, err
	}
	var in adapter.Input
	if e := c.Query("epoch"); e != "" {
		n, err := cast.ToFloat64E(e)
		if err != nil {
			return nil, errs.ErrIllegalArgument.Wrapf(err, "query parameter 'epoch' is not a number")
		}
		in = adapter.Number(n)
	} else {
		v, err := requireQuery(c, "value")
		if err != nil {
			return nil, err
		}
		in = adapter.Text(v)
	}

	pattern := opt.Nil[string]()
	if p := c.Query("pattern"); p != "" {
		pattern = opt.New(p)
	}

	if p, ok := b.(errParser); ok {
		t, err := p.ParseErr(in, pattern)
		if err != nil {
			return nil, err
		}
		return s.instantRes(b, t), nil
	}
	t, ok := b.Parse(in, pattern)
	if !ok {
		return nil, errs.ErrUnparsableTime.WithInternalMsg("'%v' can't be parsed", in)
	}
	return s.instantRes(b, t), nil
}

// Format query 't' with 'pattern', or with the pattern of 'granularity' in the format table.
func (s *Server) format(c *gin.Context) (any, error) {
	b, err := s.backend()
	if err != nil {
		return nil, err
	}
	t, err := queryInstant(c, "t")
	if err != nil {
		return nil, err
	}
	pattern := c.Query("pattern")
	if pattern == "" {
		pattern = b.Formats().Get(adapter.Granularity(c.DefaultQuery("granularity", string(adapter.GranularityDatetime))))
	}
	return b.Format(t, pattern), nil
}

func (s *Server) add(c *gin.Context) (any, error) {
	b, err := s.backend()
	if err != nil {
		return nil, err
	}
	t, err := queryInstant(c, "t")
	if err != nil {
		return nil, err
	}
	amount, err := queryInt(c, "amount", 0)
	if err != nil {
		return nil, err
	}
	return s.instantRes(b, b.Add(t, amount, adapter.ParseUnit(c.Query("unit")))), nil
}

func (s *Server) diff(c *gin.Context) (any, error) {
	b, err := s.backend()
	if err != nil {
		return nil, err
	}
	max, err := queryInstant(c, "max")
	if err != nil {
		return nil, err
	}
	min, err := queryInstant(c, "min")
	if err != nil {
		return nil, err
	}
	return b.Diff(max, min, adapter.ParseUnit(c.Query("unit"))), nil
}

func (s *Server) startOf(c *gin.Context) (any, error) {
	b, err := s.backend()
	if err != nil {
		return nil, err
	}
	t, err := queryInstant(c, "t")
	if err != nil {
		return nil, err
	}
	return s.instantRes(b, b.StartOf(t, adapter.ParseUnit(c.Query("unit")))), nil
}

func (s *Server) endOf(c *gin.Context) (any, error) {
	b, err := s.backend()
	if err != nil {
		return nil, err
	}
	t, err := queryInstant(c, "t")
	if err != nil {
		return nil, err
	}
	return s.instantRes(b, b.EndOf(t, adapter.ParseUnit(c.Query("unit")))), nil
}

// Generate ticks between query 'min' and 'max', 'unit' is determined automatically when absent.
func (s *Server) ticks(c *gin.Context) (any, error) {
	min, err := queryInstant(c, "min")
	if err != nil {
		return nil, err
	}
	max, err := queryInstant(c, "max")
	if err != nil {
		return nil, err
	}
	step, err := queryInt(c, "step", 1)
	if err != nil {
		return nil, err
	}
	iso, err := queryBool(c, "isoWeekday")
	if err != nil {
		return nil, err
	}
	maxTicks, err := queryInt(c, "maxTicks", s.conf.GetPropInt(core.PropAxisMaxTicks))
	if err != nil {
		return nil, err
	}
	if limit := s.conf.GetPropInt(core.PropAxisMaxTicks); limit > 0 && maxTicks > limit {
		maxTicks = limit
	}
	sc := axis.Scale{
		Host:       s.host,
		Unit:       adapter.ParseUnit(c.Query("unit")),
		Step:       step,
		ISOWeekday: iso,
		MaxTicks:   maxTicks,
	}
	return sc.Ticks(min, max)
}
