// Package wallet reports balances by invoking the external
// nockchain-wallet binary and scraping its human-readable output.
// There is no structured interface to the wallet; the scrape is the
// interface.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUnparseable signals wallet output the scraper could not make
// sense of: empty, cut off mid-listing, or an overflowing amount.
var ErrUnparseable = errors.New("unparseable wallet output")

// assetLine matches one note line of list-notes-by-pubkey output.
var assetLine = regexp.MustCompile(`^- assets: (\d+)\s*$`)

// The wallet prints integer nicks; balances are served in nocks.
const nicksPerNock = 65536

// A complete listing carries at least this many asset lines; fewer
// means the wallet was cut off mid-print.
const minAssetLines = 9

const defaultTimeout = 120 * time.Second

// Runner executes the wallet binary and returns its stdout. Injected
// so tests can stand in for the external tool.
type Runner func(ctx context.Context, socket, pubkey string) ([]byte, error)

// Config configures the wallet client.
type Config struct {
	// SocketPath is passed as --nockchain-socket.
	SocketPath string
	// Timeout bounds one wallet invocation. Zero means 120s, the
	// wallet's worst observed cold-start latency.
	Timeout time.Duration
	Logger  *logrus.Logger
	// Run overrides the default exec-based runner.
	Run Runner
}

// Client shells out to nockchain-wallet per balance request. Safe for
// concurrent use; each request runs its own process.
type Client struct {
	socket  string
	timeout time.Duration
	log     *logrus.Logger
	run     Runner
}

// New creates a wallet client.
func New(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if config.Run == nil {
		config.Run = execWallet
	}
	return &Client{
		socket:  config.SocketPath,
		timeout: config.Timeout,
		log:     config.Logger,
		run:     config.Run,
	}
}

// GetBalance sums every asset the wallet lists for pubkey and
// converts nicks to nocks.
func (c *Client) GetBalance(ctx context.Context, pubkey string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.log.WithField("pubkey", pubkey).Info("listing notes by pubkey")

	out, err := c.run(ctx, c.socket, pubkey)
	if err != nil {
		c.log.WithError(err).Error("wallet command failed")
		return 0, fmt.Errorf("wallet command: %w", err)
	}

	nicks, err := c.parseAssets(string(out))
	if err != nil {
		c.log.WithError(err).Error("wallet output unparseable")
		return 0, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	return float64(nicks) / nicksPerNock, nil
}

// parseAssets sums the asset lines of a listing, skipping the
// wallet's interleaved log lines (identified by their ANSI color
// escapes).
func (c *Client) parseAssets(output string) (uint64, error) {
	if strings.TrimSpace(output) == "" {
		return 0, errors.New("empty command output")
	}

	var total uint64
	count := 0
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.ContainsRune(line, '\x1b') {
			continue
		}
		m := assetLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		v, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing asset amount %q: %w", m[1], err)
		}
		total += v
		count++
	}

	c.log.WithFields(logrus.Fields{"assets": count, "nicks": total}).Debug("wallet listing parsed")

	if count < minAssetLines {
		return 0, fmt.Errorf("incomplete output: %d assets, expected at least %d", count, minAssetLines)
	}
	return total, nil
}

func execWallet(ctx context.Context, socket, pubkey string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "nockchain-wallet",
		"--nockchain-socket", socket,
		"list-notes-by-pubkey", pubkey,
	)
	// Keep the wallet's own logging to a minimum; anything it still
	// prints with escapes is skipped by the parser.
	cmd.Env = append(os.Environ(), "RUST_LOG=error")

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return out, nil
}
