package integration

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/onepredict/lges-query-server/pkg/config"
	"github.com/onepredict/lges-query-server/pkg/db"
	"github.com/onepredict/lges-query-server/pkg/logging"
	"github.com/onepredict/lges-query-server/pkg/objectstore"
	"github.com/onepredict/lges-query-server/pkg/server"
	"github.com/onepredict/lges-query-server/pkg/server/endpoints"
	gormstore "github.com/onepredict/lges-query-server/pkg/server/store/gorm"
)

const binaryPort = "18080"

// ServerInstance is a running query server
type ServerInstance struct {
	ServerURL string
	Objects   *memoryObjects

	httpServer    *httptest.Server
	cancel        context.CancelFunc
	serverProcess *exec.Cmd
}

// StartServer starts the querysrvctl binary when QUERY_SERVER_BINARY is
// set and an in-process server otherwise.
func StartServer(cfg *config.Settings, conns *db.Connections) (*ServerInstance, error) {
	if binaryPath := os.Getenv("QUERY_SERVER_BINARY"); binaryPath != "" {
		if _, err := os.Stat(binaryPath); err != nil {
			return nil, fmt.Errorf("QUERY_SERVER_BINARY path does not exist: %s", binaryPath)
		}
		log.Printf("Using binary: %s", binaryPath)
		return startBinaryServer(binaryPath, cfg)
	}
	log.Println("Using inline server mode")
	return startInlineServer(cfg, conns)
}

func startInlineServer(cfg *config.Settings, conns *db.Connections) (*ServerInstance, error) {
	objects := newMemoryObjects()
	s := server.NewServer(cfg, gormstore.NewStores(conns, cfg.Now), objects, logging.Discard(), "127.0.0.1", "0")
	endpoints.RegisterAll(s)

	httpServer := httptest.NewServer(s.Handler())
	instance := &ServerInstance{
		ServerURL:  httpServer.URL,
		Objects:    objects,
		httpServer: httpServer,
	}
	if err := waitForServer(instance.ServerURL, 10*time.Second); err != nil {
		instance.Stop()
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}
	return instance, nil
}

func startBinaryServer(binaryPath string, cfg *config.Settings) (*ServerInstance, error) {
	ctx, cancel := context.WithCancel(context.Background())

	// Migrations already ran during setup.
	cmd := exec.CommandContext(ctx, binaryPath, "server", "--no-migrate", "-b", "127.0.0.1", "-p", binaryPort)
	cmd.Env = append(os.Environ(),
		"SERVICEDB_URI="+cfg.ServiceDBURI,
		"FEATUREDB_URI="+cfg.FeatureDBURI,
		"METADATADB_URI="+cfg.MetadataDBURI,
		"PLCDB_URI="+cfg.PLCDBURI,
		"FDCDB_URI="+cfg.FDCDBURI,
		"ENDPOINT_URL="+cfg.EndpointURL,
		"QUERY_SERVER_AUDIT_ENABLED=false",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start binary: %w", err)
	}

	instance := &ServerInstance{
		ServerURL:     "http://127.0.0.1:" + binaryPort,
		cancel:        cancel,
		serverProcess: cmd,
	}
	if err := waitForServer(instance.ServerURL, 30*time.Second); err != nil {
		instance.Stop()
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}
	return instance, nil
}

// Stop shuts down the server instance
func (si *ServerInstance) Stop() {
	if si.httpServer != nil {
		si.httpServer.Close()
	}
	if si.cancel != nil {
		si.cancel()
	}
	if si.serverProcess != nil && si.serverProcess.Process != nil {
		_ = si.serverProcess.Process.Kill()
		_ = si.serverProcess.Wait()
	}
}

// waitForServer polls the status endpoint until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}

// memoryObjects is the object store of the inline server.
type memoryObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: make(map[string][]byte)}
}

func (m *memoryObjects) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, objectstore.ErrNoSuchKey
	}
	return data, nil
}

func (m *memoryObjects) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memoryObjects) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryObjects) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
