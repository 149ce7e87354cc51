package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external tool gensubs relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a tool.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// MissingToolError reports the first unavailable required tool.
type MissingToolError struct {
	Tool   string
	Detail string
}

func (e *MissingToolError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("required tool %q unavailable: %s", e.Tool, e.Detail)
	}
	return fmt.Sprintf("required tool %q unavailable", e.Tool)
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if resolved, err := exec.LookPath(cmd); err == nil {
			status.Command = resolved
			status.Available = true
		} else {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
		}
		results = append(results, status)
	}
	return results
}

// FirstMissing returns a MissingToolError for the first unavailable status,
// or nil when every tool resolved.
func FirstMissing(statuses []Status) error {
	for _, status := range statuses {
		if !status.Available {
			return &MissingToolError{Tool: status.Name, Detail: status.Detail}
		}
	}
	return nil
}
