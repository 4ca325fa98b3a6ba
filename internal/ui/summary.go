package ui

import (
	"fmt"
	"strings"

	"github.com/synapticos/trinityctl/internal/provisioning"
)

// Summary describes the outcome of a provisioning run for display.
type Summary struct {
	Environment string
	Version     string
	State       *provisioning.State
	Styled      bool
}

// Render formats the summary. Styled output uses lipgloss; plain output
// is used for non-interactive sessions and log capture.
func (s Summary) Render() string {
	var b strings.Builder

	title := fmt.Sprintf("Trinity %s deployed to %s", s.Version, s.Environment)
	b.WriteString("\n  " + s.style(titleStyle, title) + "\n")
	b.WriteString("  " + strings.Repeat("═", len(title)) + "\n\n")

	b.WriteString("  " + s.style(dimStyle, "run "+s.State.RunID) + "\n\n")

	s.section(&b, "Changes")
	s.countRow(&b, "Packages installed", len(s.State.InstalledPackages))
	s.countRow(&b, "Directories created", len(s.State.CreatedDirs))
	s.countRow(&b, "Config files written", len(s.State.RenderedFiles))
	s.countRow(&b, "Services started", len(s.State.StartedServices))
	if s.State.UserCreated {
		b.WriteString("  " + s.style(okStyle, "[OK]") + "  Service user created\n")
	}

	if len(s.State.SkippedSteps) > 0 {
		b.WriteString("\n")
		s.section(&b, "Already satisfied")
		for _, step := range s.State.SkippedSteps {
			b.WriteString("  " + s.style(dimStyle, "[--]") + "  " + step + "\n")
		}
	}

	if s.State.HealthEndpoint != "" {
		b.WriteString("\n")
		s.section(&b, "Health")
		b.WriteString("  " + s.style(okStyle, "[OK]") + "  " + s.State.HealthEndpoint + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

func (s Summary) section(b *strings.Builder, name string) {
	b.WriteString("  " + s.style(sectionStyle, name) + "\n")
	b.WriteString("  " + strings.Repeat("─", 35) + "\n")
}

func (s Summary) countRow(b *strings.Builder, name string, count int) {
	mark := s.style(dimStyle, "[--]")
	if count > 0 {
		mark = s.style(okStyle, "[OK]")
	}
	fmt.Fprintf(b, "  %s  %-22s %d\n", mark, name, count)
}

// style applies st only when styled output is enabled.
func (s Summary) style(st interface{ Render(...string) string }, text string) string {
	if !s.Styled {
		return text
	}
	return st.Render(text)
}

// StatusRow formats one health-style status row.
func StatusRow(name string, ok bool, extra string, styled bool) string {
	mark := "[OK]"
	if !ok {
		mark = "[!!]"
	}
	if styled {
		if ok {
			mark = okStyle.Render(mark)
		} else {
			mark = failStyle.Render(mark)
		}
	}
	if extra != "" {
		return fmt.Sprintf("  %s  %-28s %s", mark, name, extra)
	}
	return fmt.Sprintf("  %s  %s", mark, name)
}

// WarnRow formats a warning row.
func WarnRow(name, extra string, styled bool) string {
	mark := "[??]"
	if styled {
		mark = warnStyle.Render(mark)
	}
	if extra != "" {
		return fmt.Sprintf("  %s  %-28s %s", mark, name, extra)
	}
	return fmt.Sprintf("  %s  %s", mark, name)
}
