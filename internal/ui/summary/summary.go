// Package summary renders human-readable results of CLI commands.
package summary

import (
	"fmt"
	"slices"
	"strings"

	"github.com/imamik/slsfw/internal/provisioning"
)

// Deploy renders the outputs of a deployment.
func Deploy(out *provisioning.Outputs) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("slsfw: %s", out.FunctionName)))
	b.WriteString(" ")
	b.WriteString(readyStyle.Render("Deployed"))
	b.WriteString("\n")

	renderFunctions(&b, out)
	renderGateways(&b, out)
	renderDNS(&b, out)

	return b.String()
}

// Remove renders the result of a removal.
func Remove(remark string, domains []string, err error) string {
	var b strings.Builder
	if err != nil {
		b.WriteString(failedStyle.Render(fmt.Sprintf("%s Removal of %s failed: %v", crossMark, remark, err)))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(readyStyle.Render(fmt.Sprintf("%s Removed %s", checkMark, remark)))
	b.WriteString("\n")
	for _, d := range domains {
		fmt.Fprintf(&b, "  %s DNS records of %s\n", readyStyle.Render(checkMark), d)
	}
	return b.String()
}

func renderFunctions(b *strings.Builder, out *provisioning.Outputs) {
	b.WriteString(sectionStyle.Render("Function"))
	b.WriteString("\n")
	for _, region := range out.Regions {
		fn := out.Functions[region]
		status := readyStyle.Render(checkMark)
		if !fn.Truthy() {
			status = dimStyle.Render(skipMark)
		}
		fmt.Fprintf(b, "  %s %s%s\n", status, labelStyle.Render(region), out.FunctionName)
	}
}

func renderGateways(b *strings.Builder, out *provisioning.Outputs) {
	b.WriteString(sectionStyle.Render("API Gateway"))
	b.WriteString("\n")
	if out.Gateways == nil {
		fmt.Fprintf(b, "  %s %s\n", dimStyle.Render(skipMark), dimStyle.Render("disabled"))
		return
	}
	for _, region := range out.Regions {
		gw, ok := out.Gateways[region]
		if !ok {
			continue
		}
		fmt.Fprintf(b, "  %s %s%s %s\n",
			readyStyle.Render(checkMark), labelStyle.Render(region), gw.URL(), dimStyle.Render("("+gw.ServiceID+")"))
	}
}

func renderDNS(b *strings.Builder, out *provisioning.Outputs) {
	if len(out.CNS) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render("Custom Domains"))
	b.WriteString("\n")
	domains := slices.Clone(out.CNS)
	slices.Sort(domains)
	for _, d := range domains {
		fmt.Fprintf(b, "  %s %s\n", readyStyle.Render(checkMark), d)
	}
}
