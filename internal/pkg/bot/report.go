package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/internal/pkg/money"
)

const (
	reportSummary  = "resumido"
	reportDetailed = "detalhado"

	reportDateLayout   = "02/01/2006"
	reportDetailLimit  = 10
	reportFooter       = "VendaBot Pro - Relatórios Automáticos"
	invalidDateMessage = "❌ Data inválida. Use o formato DD/MM/AAAA."
)

// SalesReport aggregates the sales of one server over a period.
type SalesReport struct {
	Count     int
	Total     int64
	Paid      int
	Pending   int
	Cancelled int
	Sales     []models.Sale
}

// Average is the mean sale value in cents, 0 without sales.
func (r SalesReport) Average() int64 {
	if r.Count == 0 {
		return 0
	}
	return (r.Total + int64(r.Count)/2) / int64(r.Count)
}

func summarize(sales []models.Sale) SalesReport {
	r := SalesReport{Count: len(sales), Sales: sales}
	for _, s := range sales {
		r.Total += s.Price
		switch s.Status {
		case models.SaleStatusPaid:
			r.Paid++
		case models.SaleStatusCancelled:
			r.Cancelled++
		default:
			r.Pending++
		}
	}
	return r
}

func handleReport(ctx context.Context, env *Env, inv *Invocation) (*Reply, error) {
	server, err := inv.server()
	if err != nil {
		return nil, err
	}

	inicio, _ := inv.Options.String("inicio")
	fim, _ := inv.Options.String("fim")
	tipo, ok := inv.Options.String("tipo")
	if !ok || tipo == "" {
		tipo = reportSummary
	}

	loc := env.location()
	from, err := time.ParseInLocation(reportDateLayout, strings.TrimSpace(inicio), loc)
	if err != nil {
		return ephemeral(invalidDateMessage), nil
	}
	until, err := time.ParseInLocation(reportDateLayout, strings.TrimSpace(fim), loc)
	if err != nil {
		return ephemeral(invalidDateMessage), nil
	}
	if until.Before(from) {
		return ephemeral("❌ A data de fim deve ser igual ou posterior à data de início."), nil
	}

	// the end date is inclusive
	sales, err := env.Repos.Sale.ListBetween(ctx, server.ID, from, until.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	report := summarize(sales)

	title := "Relatório de Vendas Resumido"
	if tipo == reportDetailed {
		title = "Relatório de Vendas Detalhado"
	}

	fields := []*discordgo.MessageEmbedField{
		field("Total de Vendas", fmt.Sprintf("%d", report.Count), true),
		field("Valor Total", money.Format(report.Total), true),
		field("Média por Venda", money.Format(report.Average()), true),
		field("Status", fmt.Sprintf("%d Pagas\n%d Pendentes\n%d Canceladas", report.Paid, report.Pending, report.Cancelled), false),
	}
	if tipo == reportDetailed && report.Count > 0 {
		fields = append(fields, field("Vendas", detailLines(report.Sales, loc), false))
	}

	return &Reply{
		Content: "📊 Relatório gerado com sucesso!",
		Embeds: []*discordgo.MessageEmbed{{
			Title:       title,
			Description: fmt.Sprintf("Período: %s até %s", from.Format(reportDateLayout), until.Format(reportDateLayout)),
			Color:       colorBlue,
			Fields:      fields,
			Timestamp:   env.timestamp(),
			Footer:      &discordgo.MessageEmbedFooter{Text: reportFooter},
		}},
	}, nil
}

func detailLines(sales []models.Sale, loc *time.Location) string {
	var b strings.Builder
	for i, s := range sales {
		if i == reportDetailLimit {
			fmt.Fprintf(&b, "... e mais %d", len(sales)-reportDetailLimit)
			break
		}
		fmt.Fprintf(&b, "#%d • %s • %s • %s\n", s.ID, money.Format(s.Price), saleStatusLabel(s.Status), s.CreatedAt.In(loc).Format(reportDateLayout))
	}
	return strings.TrimRight(b.String(), "\n")
}
