package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// MonitoringServer runs a small ops dashboard on its own port: live shop
// stats over websocket plus threshold alerts.
type MonitoringServer struct {
	db         *pgxpool.Pool
	port       int
	alerts     []Alert
	alertsMux  sync.RWMutex
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Alert
}

type Alert struct {
	ID        int       `json:"id"`
	Severity  string    `json:"severity"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Resolved  bool      `json:"resolved"`
}

// OpsStats is the periodic snapshot pushed to dashboard clients
type OpsStats struct {
	DatabaseStatus   string  `json:"database_status"`
	ResponseTime     int64   `json:"response_time_ms"`
	ActiveAlerts     int     `json:"active_alerts"`
	CPUPercent       float64 `json:"cpu_percent"`
	MemoryPercent    float64 `json:"memory_percent"`
	ShopCount        int     `json:"shop_count"`
	CustomerCount    int     `json:"customer_count"`
	OverdueSchedules int     `json:"overdue_schedules"`
	LowStockProducts int     `json:"low_stock_products"`
	TransactionsHour int     `json:"transactions_last_hour"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewMonitoringServer(db *pgxpool.Pool, port int) *MonitoringServer {
	return &MonitoringServer{
		db:        db,
		port:      port,
		alerts:    make([]Alert, 0),
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Alert),
	}
}

func (ms *MonitoringServer) Start() {
	r := mux.NewRouter()

	r.HandleFunc("/api/stats", ms.getStats).Methods("GET")
	r.HandleFunc("/api/alerts", ms.getAlerts).Methods("GET")
	r.HandleFunc("/ws", ms.handleWebSocket)

	go ms.handleBroadcast()
	go ms.watchThresholds()

	addr := fmt.Sprintf(":%d", ms.port)
	log.Printf("[Monitoring] Ops dashboard running on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func (ms *MonitoringServer) getStats(w http.ResponseWriter, r *http.Request) {
	stats := ms.collectStats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (ms *MonitoringServer) getAlerts(w http.ResponseWriter, r *http.Request) {
	ms.alertsMux.RLock()
	defer ms.alertsMux.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ms.alerts)
}

func (ms *MonitoringServer) collectStats() OpsStats {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats := OpsStats{DatabaseStatus: "healthy"}

	start := time.Now()
	if err := ms.db.Ping(ctx); err != nil {
		stats.DatabaseStatus = "unhealthy"
	}
	stats.ResponseTime = time.Since(start).Milliseconds()

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
	}

	if stats.DatabaseStatus == "healthy" {
		// Best effort, the dashboard tolerates zeros
		ms.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_active=TRUE`).Scan(&stats.ShopCount)
		ms.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE is_active=TRUE`).Scan(&stats.CustomerCount)
		ms.db.QueryRow(ctx, `SELECT COUNT(*) FROM payment_schedules WHERE status='overdue'`).Scan(&stats.OverdueSchedules)
		ms.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE is_active=TRUE AND stock_status IN ('low_stock', 'out_of_stock')`).Scan(&stats.LowStockProducts)
		ms.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE created_at > NOW() - interval '1 hour'`).Scan(&stats.TransactionsHour)
	}

	ms.alertsMux.RLock()
	for _, a := range ms.alerts {
		if !a.Resolved {
			stats.ActiveAlerts++
		}
	}
	ms.alertsMux.RUnlock()

	return stats
}

func (ms *MonitoringServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Monitoring] WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	ms.clientsMux.Lock()
	ms.clients[conn] = true
	ms.clientsMux.Unlock()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			ms.clientsMux.Lock()
			delete(ms.clients, conn)
			ms.clientsMux.Unlock()
			break
		}
	}
}

func (ms *MonitoringServer) handleBroadcast() {
	for alert := range ms.broadcast {
		ms.clientsMux.Lock()
		for client := range ms.clients {
			if err := client.WriteJSON(alert); err != nil {
				client.Close()
				delete(ms.clients, client)
			}
		}
		ms.clientsMux.Unlock()
	}
}

func (ms *MonitoringServer) raise(severity, alertType, message string) {
	alert := Alert{
		Severity:  severity,
		Type:      alertType,
		Message:   message,
		Timestamp: time.Now(),
	}

	ms.alertsMux.Lock()
	alert.ID = len(ms.alerts) + 1
	ms.alerts = append(ms.alerts, alert)
	ms.alertsMux.Unlock()

	ms.broadcast <- alert
}

func (ms *MonitoringServer) watchThresholds() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		stats := ms.collectStats()

		if stats.DatabaseStatus == "unhealthy" {
			ms.raise("critical", "database_down", "Database is unreachable")
		}
		if stats.ResponseTime > 1000 {
			ms.raise("warning", "high_latency", fmt.Sprintf("Database response time: %dms", stats.ResponseTime))
		}
		if stats.OverdueSchedules > 0 {
			ms.raise("info", "overdue_payments", fmt.Sprintf("%d payment schedules are overdue", stats.OverdueSchedules))
		}
		if stats.LowStockProducts > 0 {
			ms.raise("info", "low_stock", fmt.Sprintf("%d products are low or out of stock", stats.LowStockProducts))
		}
	}
}
