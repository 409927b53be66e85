package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nouspsyche/launchpad/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{
		out: out,
	}
}

// RenderNetworksList renders the configured networks as a table
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in launchpad.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable()
	t.AppendHeader(table.Row{"", "Network", "Chain ID", "RPC", "Explorer", "Accounts"})
	var failed []usecase.NetworkStatus
	for _, network := range result.Networks {
		if network.Error != nil {
			failed = append(failed, network)
			t.AppendRow(table.Row{"❌", network.Name, "-", "-", "-", "-"})
			continue
		}
		explorer := network.Explorer
		if explorer == "" {
			explorer = "-"
		}
		t.AppendRow(table.Row{"✅", network.Name, network.ChainID, network.RPCHost, explorer, network.Accounts})
	}
	fmt.Fprintln(r.out, t.Render())

	if len(failed) > 0 {
		fmt.Fprintln(r.out)
		for _, network := range failed {
			color.New(color.FgRed).Fprintf(r.out, "  %s: %v\n", network.Name, network.Error)
		}
	}

	return nil
}
