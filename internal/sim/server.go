package sim

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server exposes the simulator over HTTP: the stream endpoint, the
// command API and the read endpoints.
type Server struct {
	engine   *gin.Engine
	hub      *Hub
	gen      *Generator
	history  *History
	weather  *SpaceWeather
	stations *StationStore
	metrics  *Metrics
	started  time.Time
}

func NewServer(debug bool, hub *Hub, gen *Generator, history *History, weather *SpaceWeather, stations *StationStore, metrics *Metrics) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine:   gin.Default(),
		hub:      hub,
		gen:      gen,
		history:  history,
		weather:  weather,
		stations: stations,
		metrics:  metrics,
		started:  time.Now(),
	}
	metrics.TrackClients(hub.ClientCount)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/ws", s.handleStream)

	s.engine.POST("/api/start", s.handleStart)
	s.engine.POST("/api/stop", s.handleStop)
	s.engine.GET("/api/status", s.handleStatus)
	s.engine.GET("/api/space-weather/summary", s.handleSpaceWeather)
	s.engine.GET("/api/data/recent/:band", s.handleRecent)
	s.engine.GET("/stations", s.handleStations)

	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	s.engine.GET("/health", s.handleHealth)
}

// Handler returns the underlying HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	client := s.hub.Add(conn)

	// Inbound frames are discarded. The read keeps close detection
	// working so the hub can drop the client.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.hub.Remove(client)
}

func (s *Server) handleStart(c *gin.Context) {
	if err := s.gen.Start(); err != nil {
		s.metrics.Commands.WithLabelValues("start", "rejected").Inc()
		c.JSON(400, gin.H{"detail": err.Error()})
		return
	}

	s.metrics.Commands.WithLabelValues("start", "ok").Inc()
	c.JSON(200, CommandAck{Status: "started", Message: "VLF monitoring started"})
}

func (s *Server) handleStop(c *gin.Context) {
	if err := s.gen.Stop(); err != nil {
		s.metrics.Commands.WithLabelValues("stop", "rejected").Inc()
		c.JSON(400, gin.H{"detail": err.Error()})
		return
	}

	s.metrics.Commands.WithLabelValues("stop", "ok").Inc()
	c.JSON(200, CommandAck{Status: "stopped", Message: "VLF monitoring stopped"})
}

func (s *Server) handleStatus(c *gin.Context) {
	var cpuPercent float64
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		cpuPercent = pct[0]
	}

	var memPercent float64
	if vm, err := mem.VirtualMemory(); err == nil {
		memPercent = vm.UsedPercent
	}

	c.JSON(200, gin.H{
		"monitoring_active": s.gen.Running(),
		"uptime_seconds":    int(time.Since(s.started).Seconds()),
		"clients":           s.hub.ClientCount(),
		"frames_sent":       s.gen.Frames(),
		"bands":             s.history.Bands(),
		"cpu_percent":       cpuPercent,
		"memory_percent":    memPercent,
	})
}

func (s *Server) handleSpaceWeather(c *gin.Context) {
	c.JSON(200, s.weather.Summary())
}

func (s *Server) handleStations(c *gin.Context) {
	list, err := s.stations.List(c.Query("type"), c.Query("name"))
	if err != nil {
		c.JSON(500, gin.H{"detail": err.Error()})
		return
	}
	if list == nil {
		list = []Station{}
	}
	c.JSON(200, list)
}

func (s *Server) handleRecent(c *gin.Context) {
	band := c.Param("band")

	minutes := 60
	if q := c.Query("minutes"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 1 || v > 1440 {
			c.JSON(400, gin.H{"detail": "minutes must be between 1 and 1440"})
			return
		}
		minutes = v
	}

	samples, ok := s.history.Recent(band, minutes)
	if !ok {
		c.JSON(404, gin.H{"detail": fmt.Sprintf("unknown band: %s", band)})
		return
	}
	if samples == nil {
		samples = []Sample{}
	}

	c.JSON(200, RecentData{Band: band, Samples: samples, Count: len(samples)})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{Addr: addr, Handler: s.engine}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("simulator listening on %s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
