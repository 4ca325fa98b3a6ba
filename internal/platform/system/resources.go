package system

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// FreeDiskBytes returns the number of bytes available to unprivileged
// callers on the filesystem containing path.
func FreeDiskBytes(path string) (uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", path, err)
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}

// AvailableMemoryBytes returns MemAvailable from /proc/meminfo.
func AvailableMemoryBytes() (uint64, error) {
	return readMemInfo("/proc/meminfo")
}

func readMemInfo(path string) (uint64, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return 0, fmt.Errorf("failed to open meminfo: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemAvailable:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse MemAvailable: %w", err)
		}
		return kb * 1024, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read meminfo: %w", err)
	}
	return 0, fmt.Errorf("MemAvailable not found in %s", path)
}
