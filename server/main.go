package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/tiggercwh/go-dice/config"
	"github.com/tiggercwh/go-dice/engine"
	"github.com/tiggercwh/go-dice/gameModel"
)

type originPolicy []string

func (p originPolicy) allows(origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range p {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

type GameServer struct {
	game    *engine.Game
	hub     *statsHub
	origins originPolicy
}

func NewGameServer(game *engine.Game, origins []string) *GameServer {
	return &GameServer{
		game:    game,
		hub:     newStatsHub(origins),
		origins: origins,
	}
}

func (gs *GameServer) setCORS(w http.ResponseWriter, r *http.Request, methods string) {
	origin := r.Header.Get("Origin")
	if origin != "" && gs.origins.allows(origin) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Vary", "Origin")
	}
	w.Header().Set("Access-Control-Allow-Methods", methods)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func (gs *GameServer) handleRoll(w http.ResponseWriter, r *http.Request) {
	gs.setCORS(w, r, "POST, OPTIONS")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	var req gameModel.RollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Mode == "" {
		req.Mode = gameModel.Solo
	}
	if req.NumberOfDice == 0 {
		req.NumberOfDice = 1
	}
	resp, err := gs.game.Roll(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("roll mode=%s dice=%d player=%d winner=%q (request %s)",
		req.Mode, req.NumberOfDice, req.Player, resp.Event.Winner, r.Header.Get("X-Request-ID"))
	gs.hub.broadcast(gs.game.Snapshot())
	writeJSON(w, resp)
}

func (gs *GameServer) handleState(w http.ResponseWriter, r *http.Request) {
	gs.setCORS(w, r, "GET")
	writeJSON(w, gs.game.Snapshot())
}

func (gs *GameServer) handleReset(w http.ResponseWriter, r *http.Request) {
	gs.setCORS(w, r, "POST, OPTIONS")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	gs.game.Reset()
	log.Printf("game reset (request %s)", r.Header.Get("X-Request-ID"))
	stats := gs.game.Snapshot()
	gs.hub.broadcast(stats)
	writeJSON(w, stats)
}

func (gs *GameServer) handleWS(w http.ResponseWriter, r *http.Request) {
	gs.hub.serve(w, r, gs.game.Snapshot())
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func newRouter(gs *GameServer) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/roll", gs.handleRoll).Methods("POST", "OPTIONS")
	api.HandleFunc("/state", gs.handleState).Methods("GET")
	api.HandleFunc("/reset", gs.handleReset).Methods("POST", "OPTIONS")
	api.HandleFunc("/ws", gs.handleWS).Methods("GET")
	r.HandleFunc("/health", handleHealth).Methods("GET")
	return r
}

func main() {
	cfg, err := config.ParseServer(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[DICE-SERVER] ")

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = engine.NewSeed(); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}
	gameServer := NewGameServer(engine.New(seed), cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           newRouter(gameServer),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		gameServer.hub.closeAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Server listening on %s (seed %d)", srv.Addr, seed)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
