//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Set FLEET_TEST_DSN / FLEET_TEST_REDIS_ADDR to reuse running services
// instead of starting containers.
var (
	testDSN       string
	testRedisAddr string
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	var containers []testcontainers.Container
	terminate := func() {
		for _, c := range containers {
			_ = c.Terminate(ctx)
		}
	}

	testDSN = os.Getenv("FLEET_TEST_DSN")
	if testDSN == "" {
		pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17-alpine",
				ExposedPorts: []string{"5432/tcp"},
				Env: map[string]string{
					"POSTGRES_USER":     "fleet",
					"POSTGRES_PASSWORD": "fleet",
					"POSTGRES_DB":       "fleet",
				},
				WaitingFor: wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60 * time.Second),
			},
			Started: true,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
			os.Exit(1)
		}
		containers = append(containers, pg)

		host, _ := pg.Host(ctx)
		port, _ := pg.MappedPort(ctx, "5432")
		testDSN = fmt.Sprintf("postgres://fleet:fleet@%s:%s/fleet?sslmode=disable", host, port.Port())
	}

	testRedisAddr = os.Getenv("FLEET_TEST_REDIS_ADDR")
	if testRedisAddr == "" {
		rd, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{"6379/tcp"},
				WaitingFor:   wait.ForLog("Ready to accept connections"),
			},
			Started: true,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start redis container: %v\n", err)
			terminate()
			os.Exit(1)
		}
		containers = append(containers, rd)

		host, _ := rd.Host(ctx)
		port, _ := rd.MappedPort(ctx, "6379")
		testRedisAddr = fmt.Sprintf("%s:%s", host, port.Port())
	}

	code := m.Run()

	terminate()
	os.Exit(code)
}
