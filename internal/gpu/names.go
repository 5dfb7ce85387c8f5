package gpu

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jaypipes/pcidb"
)

var (
	pciOnce sync.Once
	pciDB   *pcidb.PCIDB
	pciErr  error
)

// RefineNames replaces placeholder device names (raw hex ids, generic
// driver strings) with the product name from the PCI id database, using the
// vendor/device ids sysfs exposes for each bus address. Devices the
// database does not know keep their reported name.
func RefineNames(devices []Device, pciRoot string) {
	for i := range devices {
		if !shouldResolveName(devices[i].Name) {
			continue
		}
		resolved := resolveName(devices[i].BusAddress, pciRoot)
		if resolved != "" {
			devices[i].Name = resolved
		}
	}
}

func resolveName(busAddress, pciRoot string) string {
	db := loadPCIDatabase()
	if db == nil {
		return ""
	}

	for _, addr := range addressCandidates(busAddress) {
		vendor := readPCIID(filepath.Join(pciRoot, addr, "vendor"))
		device := readPCIID(filepath.Join(pciRoot, addr, "device"))
		if vendor == "" || device == "" {
			continue
		}
		product, ok := db.Products[vendor+device]
		if !ok || product == nil {
			continue
		}
		return product.Name
	}
	return ""
}

func loadPCIDatabase() *pcidb.PCIDB {
	pciOnce.Do(func() {
		pciDB, pciErr = pcidb.New()
	})
	if pciErr != nil || pciDB == nil {
		return nil
	}
	return pciDB
}

// readPCIID reads a sysfs id file like "0x10de\n" and normalizes it to a
// lower-case four-digit hex string.
func readPCIID(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	value := strings.TrimSpace(string(content))
	value = strings.TrimPrefix(value, "0x")
	value = strings.TrimPrefix(value, "0X")
	if value == "" {
		return ""
	}
	value = strings.ToLower(value)
	if len(value) < 4 {
		value = strings.Repeat("0", 4-len(value)) + value
	}
	return value
}

func shouldResolveName(current string) bool {
	lower := strings.ToLower(strings.TrimSpace(current))
	if lower == "" || lower == "unknown" {
		return true
	}
	if strings.HasPrefix(lower, "0x") {
		return true
	}
	if strings.HasPrefix(lower, "pci device") {
		return true
	}
	return false
}
