// Telemetry hub: accepts raw telemetry lines from rovers, stores them in
// BoltDB and broadcasts every frame to websocket subscribers.
// - POST /api/telemetry : ingest one T|F:..|L:..|R:.. line
// - GET  /api/latest    : latest stored frame as JSON
// - GET  /ws            : websocket clients subscribe to frames
package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.etcd.io/bbolt"

	"SonicRover/internal/model"
	"SonicRover/internal/pilot"
	"SonicRover/internal/util"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

const frameBucket = "frames"

type hub struct {
	db      *bbolt.DB
	clients map[*websocket.Conn]bool
	mu      sync.Mutex
}

func main() {
	util.SetupLogger()

	addr := flag.String("addr", ":10000", "listen address")
	dbPath := flag.String("db", "tmp/telemetry.db", "BoltDB path")
	flag.Parse()

	if err := os.MkdirAll("tmp", 0o755); err != nil {
		log.Fatalf("create tmp/: %v", err)
	}
	db, err := bbolt.Open(*dbPath, 0o666, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		log.Fatalf("open BoltDB: %v", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Printf("[hub] error closing BoltDB: %v", cerr)
		}
	}()

	h := &hub{db: db, clients: map[*websocket.Conn]bool{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/telemetry", h.handleTelemetry)
	mux.HandleFunc("/api/latest", h.handleLatest)
	mux.HandleFunc("/ws", h.handleWS)

	server := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		log.Printf("[hub] listening on %s", *addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[hub] HTTP server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("[hub] shutting down")
	_ = server.Close()
}

// handleTelemetry ingests one raw telemetry line, stores the decoded frame
// and broadcasts it to websocket clients.
func (h *hub) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read telemetry", http.StatusBadRequest)
		return
	}
	if cerr := r.Body.Close(); cerr != nil {
		log.Printf("[hub] warning: close telemetry body: %v", cerr)
	}

	line := strings.TrimSpace(string(body))
	front, left, right, err := pilot.DecodeTelemetry(line)
	if err != nil {
		http.Error(w, "invalid telemetry", http.StatusBadRequest)
		return
	}

	frame := model.TelemetryFrame{
		Front:     front,
		Left:      left,
		Right:     right,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
	encoded, _ := json.Marshal(frame)

	err = h.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(frameBucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(frame.Timestamp), encoded)
	})
	if err != nil {
		http.Error(w, "failed to save telemetry", http.StatusInternalServerError)
		return
	}

	h.broadcast(encoded)
	w.WriteHeader(http.StatusOK)
}

// handleLatest returns the most recently stored frame.
func (h *hub) handleLatest(w http.ResponseWriter, r *http.Request) {
	err := h.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(frameBucket))
		if b == nil {
			http.Error(w, "no telemetry data", http.StatusNotFound)
			return nil
		}
		_, v := b.Cursor().Last()
		if v == nil {
			http.Error(w, "no data available", http.StatusNotFound)
			return nil
		}
		w.Header().Set("Content-Type", "application/json")
		if _, werr := w.Write(v); werr != nil {
			log.Printf("[hub] warning: write latest frame: %v", werr)
		}
		return nil
	})
	if err != nil {
		http.Error(w, "failed to read telemetry", http.StatusInternalServerError)
	}
}

// handleWS upgrades HTTP to websocket and registers the client for broadcasts.
func (h *hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			if err := conn.Close(); err != nil {
				log.Printf("[hub] warning: close websocket: %v", err)
			}
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// broadcast sends a frame to all connected websocket clients.
func (h *hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.WriteMessage(websocket.TextMessage, msg)
	}
}
