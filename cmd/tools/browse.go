package tools

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"github.com/Manu343726/csrgen/cmd/settings"
	"github.com/Manu343726/csrgen/pkg/csr"
	"github.com/Manu343726/csrgen/pkg/csr/doc"
	"github.com/Manu343726/csrgen/pkg/utils"
)

const browseHelp = " tab: switch panel | x: toggle RV32/RV64 | q, esc: quit "

// Interactive register browser state
type browser struct {
	db       *csr.Database
	xlen     csr.XLEN
	selected []*csr.Register

	app     *tview.Application
	filter  *tview.InputField
	list    *tview.List
	details *tview.TextView
}

func newBrowser(db *csr.Database, xlen csr.XLEN) *browser {
	b := &browser{
		db:      db,
		xlen:    xlen,
		app:     tview.NewApplication(),
		filter:  tview.NewInputField().SetLabel("filter: "),
		list:    tview.NewList().ShowSecondaryText(false),
		details: tview.NewTextView().SetScrollable(true).SetWrap(false),
	}

	b.list.SetBorder(true)
	b.details.SetBorder(true)

	b.filter.SetChangedFunc(func(text string) {
		b.populate(text)
	})
	b.list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		b.show(index)
	})

	b.populate("")
	return b
}

// Fills the register list with the registers whose name contains the filter
func (b *browser) populate(filter string) {
	b.selected = utils.Filter(b.db.Registers(), func(r *csr.Register) bool {
		return strings.Contains(r.Name, strings.ToLower(filter))
	})

	b.list.Clear()
	for _, r := range b.selected {
		b.list.AddItem(r.Name, r.Description, 0, nil)
	}

	b.list.SetTitle(fmt.Sprintf(" %v %v/%v ", b.xlen, len(b.selected), b.db.Len()))
	b.show(b.list.GetCurrentItem())
}

func (b *browser) show(index int) {
	if index < 0 || index >= len(b.selected) {
		b.details.SetTitle("")
		b.details.Clear()
		return
	}

	r := b.selected[index]

	var text strings.Builder
	if err := doc.Describe(&text, r, b.xlen); err != nil {
		fmt.Fprintf(&text, "\nerror: %v\n", err)
	}

	b.details.SetTitle(" " + r.Name + " ")
	b.details.SetText(text.String()).ScrollToBeginning()
}

func (b *browser) toggleXLEN() {
	if b.xlen == csr.XLEN32 {
		b.xlen = csr.XLEN64
	} else {
		b.xlen = csr.XLEN32
	}

	b.populate(b.filter.GetText())
}

func (b *browser) cycleFocus() {
	switch b.app.GetFocus() {
	case b.filter:
		b.app.SetFocus(b.list)
	case b.list:
		b.app.SetFocus(b.details)
	default:
		b.app.SetFocus(b.filter)
	}
}

func (b *browser) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		b.cycleFocus()
		return nil
	case tcell.KeyEscape:
		b.app.Stop()
		return nil
	}

	if b.app.GetFocus() == b.filter {
		return event
	}

	switch event.Rune() {
	case 'q':
		b.app.Stop()
		return nil
	case 'x':
		b.toggleXLEN()
		return nil
	}

	return event
}

func (b *browser) Run() error {
	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(b.filter, 1, 0, false).
		AddItem(b.list, 0, 1, true)

	panels := tview.NewFlex().
		AddItem(left, 32, 0, true).
		AddItem(b.details, 0, 1, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(panels, 0, 1, true).
		AddItem(tview.NewTextView().SetText(browseHelp), 1, 0, false)

	b.app.SetInputCapture(b.handleKey)
	return b.app.SetRoot(root, true).SetFocus(b.list).Run()
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the register database interactively",
	Long: `Opens a terminal UI listing every register of the database with its
documentation and bit layout. The list can be filtered by name and the XLEN
toggled while browsing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, xlen, err := settings.Target()
		if err != nil {
			return err
		}

		return newBrowser(db, xlen).Run()
	},
}

func init() {
	ToolsCmd.AddCommand(browseCmd)
}
