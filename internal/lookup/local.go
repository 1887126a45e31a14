package lookup

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/oschwald/maxminddb-golang"
)

var errNoLocalDB = errors.New("local ASN database not loaded")

// LocalDB reads ASN data from a GeoLite2-ASN MMDB file.
type LocalDB struct {
	reader *maxminddb.Reader
}

type asnRecord struct {
	AutonomousSystemNumber       int    `maxminddb:"autonomous_system_number"`
	AutonomousSystemOrganization string `maxminddb:"autonomous_system_organization"`
}

// OpenLocalDB opens the MMDB at path. It returns nil when path is empty or
// the file cannot be used, which disables local enrichment.
func OpenLocalDB(path string, logger *slog.Logger) *LocalDB {
	if path == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := os.Stat(path); err != nil {
		logger.Warn("MMDB file not available, local enrichment disabled", "component", "local", "path", path, "error", err)
		return nil
	}

	reader, err := maxminddb.Open(path)
	if err != nil {
		logger.Warn("failed to open MMDB, local enrichment disabled", "component", "local", "path", path, "error", err)
		return nil
	}

	logger.Info("loaded MMDB", "component", "local", "path", path)
	return &LocalDB{reader: reader}
}

// LookupASN returns the ASN as "AS<number>" and its organisation.
func (db *LocalDB) LookupASN(ipStr string) (string, string, error) {
	if db == nil || db.reader == nil {
		return "", "", errNoLocalDB
	}
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return "", "", fmt.Errorf("invalid IP: %s", ipStr)
	}

	var rec asnRecord
	if err := db.reader.Lookup(ip, &rec); err != nil {
		return "", "", fmt.Errorf("MMDB lookup failed: %w", err)
	}
	if rec.AutonomousSystemNumber == 0 {
		return "", "", fmt.Errorf("no ASN record for %s", ipStr)
	}
	return fmt.Sprintf("AS%d", rec.AutonomousSystemNumber), rec.AutonomousSystemOrganization, nil
}

func (db *LocalDB) Close() {
	if db != nil && db.reader != nil {
		db.reader.Close()
	}
}
