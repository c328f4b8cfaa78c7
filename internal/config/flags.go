package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a control API address in format [host]:[port]
//	-backend remote backend: rest or postgres
//	-remote-url REST facade base URL
//	-api-key REST facade API key
//	-d remote database DSN
//	-local-db local SQLite file path
//	-device-id device identifier stamped into sync metadata
//	-c/-config json file path with configs
//	-conflict-strategy conflict strategy (auto, local_wins, remote_wins, manual)
//	-drain-interval queue drain period (e.g., "1m")
//	-request-timeout remote request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var remoteBackend string
	var remoteURL string
	var apiKey string
	var remoteDSN string
	var localDBPath string
	var deviceID string
	var jsonConfigPath string
	var conflictStrategy string
	var drainInterval time.Duration
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Control API net address host:port")
	flag.StringVar(&remoteBackend, "backend", "", "Remote backend: rest or postgres")
	flag.StringVar(&remoteURL, "remote-url", "", "Remote REST base URL")
	flag.StringVar(&apiKey, "api-key", "", "Remote REST API key")
	flag.StringVar(&remoteDSN, "d", "", "Remote database DSN")
	flag.StringVar(&localDBPath, "local-db", "", "Local SQLite file path")
	flag.StringVar(&deviceID, "device-id", "", "Device identifier")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&conflictStrategy, "conflict-strategy", "", "Conflict strategy (auto, local_wins, remote_wins, manual)")
	flag.DurationVar(&drainInterval, "drain-interval", 0, "Queue drain period (e.g., 1m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			DeviceID: deviceID,
		},
		Remote: Remote{
			Backend:        RemoteBackend(remoteBackend),
			BaseURL:        remoteURL,
			APIKey:         apiKey,
			DSN:            remoteDSN,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: localDBPath,
			},
		},
		Sync: Sync{
			ConflictStrategy: conflictStrategy,
			DrainInterval:    drainInterval,
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Workers:      Workers{},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
