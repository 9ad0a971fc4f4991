// containers.go
//
// A construction materials catalog service: stores, brands, items, inventory and material attributes
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of materials-catalog.
// materials-catalog is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// materials-catalog is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with materials-catalog.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package testhelpers starts the database, redis and authorizer containers used by
// integration tests and by cmd/testcontainers. Expects environment variables to be
// loaded from .env files when run standalone.
package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/localnerve/materials-catalog/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Options selects the containers to start
type Options struct {
	DBType       string // mariadb, mysql or postgres
	DBImage      string
	WithRedis    bool
	RedisImage   string
	WithAuthz    bool
	AuthzImage   string
	AuthzPort    string
	AuthzSecret  string
	AuthzClient  string
	StartTimeout time.Duration
}

// OptionsFromEnv reads DB_TYPE, DB_IMAGE, REDIS_IMAGE and the AUTHZ_* settings
func OptionsFromEnv() Options {
	opts := Options{
		DBType:      getEnv("DB_TYPE", "mariadb"),
		DBImage:     os.Getenv("DB_IMAGE"),
		WithRedis:   true,
		RedisImage:  getEnv("REDIS_IMAGE", "redis:7-alpine"),
		AuthzImage:  os.Getenv("AUTHZ_IMAGE"),
		AuthzPort:   getEnv("AUTHZ_PORT", "9010"),
		AuthzSecret: getEnv("AUTHZ_ADMIN_SECRET", "admin"),
		AuthzClient: getEnv("AUTHZ_CLIENT_ID", uuid.New().String()),
	}
	opts.WithAuthz = opts.AuthzImage != ""
	return opts
}

// Containers holds the running containers and a config pointing at their mapped ports
type Containers struct {
	Network    *testcontainers.DockerNetwork
	DB         testcontainers.Container
	Redis      testcontainers.Container
	Authorizer testcontainers.Container
	Config     *config.Config
}

// Terminate stops every started container and removes the network
func (tc *Containers) Terminate(t *testing.T) {
	ctx := context.Background()
	for name, c := range map[string]testcontainers.Container{
		"authorizer": tc.Authorizer,
		"redis":      tc.Redis,
		"database":   tc.DB,
	} {
		if c == nil {
			continue
		}
		if err := c.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate %s: %v", name, err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// DockerAvailable pings the docker daemon
func DockerAvailable(ctx context.Context) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return err
	}
	defer cli.Close()
	_, err = cli.Ping(ctx)
	return err
}

// RequireDocker skips t in short mode or when no docker daemon answers
func RequireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := DockerAvailable(ctx); err != nil {
		t.Skipf("Skipping integration test, docker unavailable: %v", err)
	}
}

// Start creates a network and starts the selected containers.
// With a nil t, failures are printed and the process exits.
func Start(t *testing.T, opts Options) (*Containers, error) {
	ctx := context.Background()
	tc := &Containers{}

	if opts.StartTimeout == 0 {
		opts.StartTimeout = 90 * time.Second
	}

	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	tc.Network = nw

	dbCfg, err := startDatabase(ctx, t, tc, opts)
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to start database")
	}
	tc.Config = dbCfg

	if opts.WithRedis {
		addr, err := startRedis(ctx, tc, opts)
		if err != nil {
			tc.Terminate(t)
			exitWithError(t, err, "Failed to start redis")
		}
		tc.Config.RedisAddr = addr
		logMessage(t, "REDIS_ADDR=%s", addr)
	}

	if opts.WithAuthz {
		url, err := startAuthorizer(ctx, tc, opts)
		if err != nil {
			tc.Terminate(t)
			exitWithError(t, err, "Failed to start authorizer")
		}
		tc.Config.AuthzURL = url
		tc.Config.AuthzClientID = opts.AuthzClient
		logMessage(t, "AUTHZ_URL=%s", url)
	}

	logMessage(t, "Catalog testcontainers started successfully")
	return tc, nil
}

type dbImage struct {
	image  string
	port   string
	env    map[string]string
	waitOn string
}

const (
	testDatabase = "catalog"
	testUser     = "catalog"
	testPassword = "catalog-test"
)

func imageFor(opts Options) (dbImage, error) {
	switch opts.DBType {
	case "mariadb", "mysql":
		img := dbImage{
			image: "mariadb:11",
			port:  "3306",
			env: map[string]string{
				"MARIADB_ROOT_PASSWORD": testPassword,
				"MARIADB_DATABASE":      testDatabase,
				"MARIADB_USER":          testUser,
				"MARIADB_PASSWORD":      testPassword,
			},
			waitOn: "ready for connections",
		}
		if opts.DBType == "mysql" {
			img.image = "mysql:8.4"
			img.env = map[string]string{
				"MYSQL_ROOT_PASSWORD": testPassword,
				"MYSQL_DATABASE":      testDatabase,
				"MYSQL_USER":          testUser,
				"MYSQL_PASSWORD":      testPassword,
			}
		}
		if opts.DBImage != "" {
			img.image = opts.DBImage
		}
		return img, nil
	case "postgres":
		img := dbImage{
			image: "postgres:17-alpine",
			port:  "5432",
			env: map[string]string{
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_USER":     testUser,
				"POSTGRES_DB":       testDatabase,
			},
			waitOn: "database system is ready to accept connections",
		}
		if opts.DBImage != "" {
			img.image = opts.DBImage
		}
		return img, nil
	}
	return dbImage{}, fmt.Errorf("no test container for DB_TYPE %q", opts.DBType)
}

func startDatabase(ctx context.Context, t *testing.T, tc *Containers, opts Options) (*config.Config, error) {
	img, err := imageFor(opts)
	if err != nil {
		return nil, err
	}
	port, err := nat.NewPort("tcp", img.port)
	if err != nil {
		return nil, err
	}

	if exists, err := imageExists(ctx, img.image); err == nil && exists {
		logMessage(t, "Image %s exists, reusing...", img.image)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        img.image,
			ExposedPorts: []string{string(port)},
			Env:          img.env,
			WaitingFor: wait.ForAll(
				wait.ForLog(img.waitOn),
				wait.ForListeningPort(port),
			).WithDeadline(opts.StartTimeout),
			Networks: []string{tc.Network.Name},
			NetworkAliases: map[string][]string{
				tc.Network.Name: {"db"},
			},
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}
	tc.DB = container

	host, err := container.Host(ctx)
	if err != nil {
		return nil, err
	}
	mapped, err := container.MappedPort(ctx, port)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Port:              "3000",
		DBType:            opts.DBType,
		DBHost:            host,
		DBPort:            mapped.Port(),
		DBDatabase:        testDatabase,
		DBUser:            testUser,
		DBPassword:        testPassword,
		DBConnectionLimit: 5,
		DBLogLevel:        "silent",
		CategoryMatch:     config.CategoryMatchExact,
		CacheTTL:          time.Minute,
		KafkaTopic:        "catalog.changes",
	}
	if err := waitForDatabase(cfg, 30); err != nil {
		return nil, err
	}
	logMessage(t, "DB_HOST=%s DB_PORT=%s", host, mapped.Port())
	return cfg, nil
}

// waitForDatabase pings until the server accepts logins; the log line can precede that
func waitForDatabase(cfg *config.Config, attempts int) error {
	driver, dsn := "mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBDatabase)
	if cfg.DBType == "postgres" {
		driver = "pgx"
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBDatabase)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	for i := 0; i < attempts; i++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database not ready after %d seconds: %w", attempts, err)
}

func startRedis(ctx context.Context, tc *Containers, opts Options) (string, error) {
	port, err := nat.NewPort("tcp", "6379")
	if err != nil {
		return "", err
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        opts.RedisImage,
			ExposedPorts: []string{string(port)},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			Networks:     []string{tc.Network.Name},
			NetworkAliases: map[string][]string{
				tc.Network.Name: {"redis"},
			},
		},
		Started: true,
	})
	if err != nil {
		return "", err
	}
	tc.Redis = container

	host, err := container.Host(ctx)
	if err != nil {
		return "", err
	}
	mapped, err := container.MappedPort(ctx, port)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", host, mapped.Port()), nil
}

// startAuthorizer runs authorizer against the catalog database container
func startAuthorizer(ctx context.Context, tc *Containers, opts Options) (string, error) {
	port, err := nat.NewPort("tcp", opts.AuthzPort)
	if err != nil {
		return "", err
	}

	dbType, dbURL := "mariadb", fmt.Sprintf("%s:%s@tcp(db:3306)/%s", testUser, testPassword, testDatabase)
	if opts.DBType == "postgres" {
		dbType = "postgres"
		dbURL = fmt.Sprintf("postgres://%s:%s@db:5432/%s?sslmode=disable", testUser, testPassword, testDatabase)
	}

	logLevel := "info"
	if os.Getenv("DEBUG_CONTAINER") == "true" {
		logLevel = "debug"
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        opts.AuthzImage,
			ExposedPorts: []string{string(port)},
			Env: map[string]string{
				"ENV":           "production",
				"CLIENT_ID":     opts.AuthzClient,
				"PORT":          opts.AuthzPort,
				"DATABASE_TYPE": dbType,
				"DATABASE_NAME": testDatabase,
				"DATABASE_URL":  dbURL,
				"ADMIN_SECRET":  opts.AuthzSecret,
				"ROLES":         "admin,user",
				"DEFAULT_ROLES": "user",
				"LOG_LEVEL":     logLevel,
			},
			WaitingFor: wait.ForLog("Authorizer running at PORT:").WithStartupTimeout(30 * time.Second),
			Networks:   []string{tc.Network.Name},
			NetworkAliases: map[string][]string{
				tc.Network.Name: {"authorizer"},
			},
		},
		Started: true,
	})
	if err != nil {
		return "", err
	}
	tc.Authorizer = container

	host, err := container.Host(ctx)
	if err != nil {
		return "", err
	}
	mapped, err := container.MappedPort(ctx, port)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("http://%s:%s", host, mapped.Port()), nil
}

func imageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, image := range images {
		for _, tag := range image.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
