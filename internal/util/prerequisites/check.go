// Package prerequisites provides utilities for checking required host tools
// before a provisioning run starts.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a host tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string
}

// ProvisioningTools returns the tools the local provisioning steps shell
// out to. apt-get and friends are assumed present on any Debian-family
// host; the ones listed here are the ones commonly missing.
func ProvisioningTools() []Tool {
	return []Tool{
		{
			Name:        "systemctl",
			Required:    true,
			Description: "Required for managing the Trinity service units",
		},
		{
			Name:        "apt-get",
			Required:    true,
			Description: "Required for installing OS packages",
		},
		{
			Name:        "useradd",
			Required:    true,
			Description: "Required for creating the service account",
		},
		{
			Name:        "ufw",
			Required:    false,
			Description: "Used for firewall rules; installed during provisioning if missing",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.Description))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckProvisioning checks the tools needed for local provisioning.
func CheckProvisioning() *CheckResults {
	return Check(ProvisioningTools())
}
