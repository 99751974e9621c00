package debugviewer

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar reports the outcome of the last scan: which strategy won and
// how many candidates were pooled (the winning score is not shown) (spec §3's "Strategy
// candidate set" and §4.7's pooling step), adapted from the teacher's
// gui.StatusBar label-pair layout.
type StatusBar struct {
	container      *fyne.Container
	statusLabel    *widget.Label
	strategyLabel  *widget.Label
	candidateLabel *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{
		statusLabel:    widget.NewLabel("Ready"),
		strategyLabel:  widget.NewLabel("Strategy: --"),
		candidateLabel: widget.NewLabel("Candidates: --"),
	}
	sb.container = container.NewBorder(nil, nil, sb.statusLabel,
		container.NewHBox(sb.strategyLabel, widget.NewSeparator(), sb.candidateLabel))
	return sb
}

func (sb *StatusBar) Container() fyne.CanvasObject { return sb.container }

func (sb *StatusBar) SetStatus(status string) { sb.statusLabel.SetText(status) }

// SetNoDocument reports a failed scan, clearing the strategy/candidate
// fields (spec §7's "no document found" outcome, never an error).
func (sb *StatusBar) SetNoDocument() {
	sb.statusLabel.SetText("No document found")
	sb.strategyLabel.SetText("Strategy: --")
	sb.candidateLabel.SetText("Candidates: --")
}

// SetResult reports a successful scan's winning strategy and pool size.
func (sb *StatusBar) SetResult(strategy string, candidates int, fallbackRaw bool) {
	sb.statusLabel.SetText("Document found")
	if fallbackRaw {
		sb.strategyLabel.SetText(fmt.Sprintf("Strategy: %s (raw fallback)", strategy))
	} else {
		sb.strategyLabel.SetText(fmt.Sprintf("Strategy: %s", strategy))
	}
	sb.candidateLabel.SetText(fmt.Sprintf("Candidates: %d", candidates))
}
