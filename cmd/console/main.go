package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gestock/internal/config"
	"gestock/internal/console"
	"gestock/internal/domain/models"
	"gestock/internal/format"
	"gestock/internal/history"
	"gestock/pkg/clients/inventory"
	"gestock/pkg/logger"
)

const usage = `Commandes:
  stock                          afficher le stock
  preview <id> <quantité>        aperçu d'une vente
  vente <id> <quantité>          enregistrer une vente
  ajout <nom> <stock> <prix> <min>   ajouter un article
  modif <id> <nom> <stock> <prix> <min>  modifier un article
  suppr <id>                     supprimer un article
  historique [today|week|month|all] [filtre]   historique des ventes
  sync                           synchroniser vers le cloud
  restore                        restaurer depuis le cloud
  quit                           quitter`

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	client := inventory.NewClient(cfg.Console.APIBaseURL)
	app := console.NewApp(client, format.French{}, os.Stdout, cfg.Console, baseLogger.Named("console"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.RefreshStock(ctx); err != nil {
		baseLogger.Warn("initial stock load failed", zap.Error(err))
	}
	app.RunPollers(ctx)

	fmt.Println(usage)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "stock":
			_ = app.RefreshStock(ctx)
		case "preview":
			if len(fields) >= 3 {
				id, _ := strconv.Atoi(fields[1])
				app.ShowPreview(id, fields[2])
			}
		case "vente":
			if len(fields) >= 3 {
				id, _ := strconv.Atoi(fields[1])
				app.Sell(ctx, id, fields[2])
			}
		case "ajout":
			if article, ok := parseArticle(fields[1:]); ok {
				app.SaveArticle(ctx, 0, article)
			}
		case "modif":
			if len(fields) >= 6 {
				id, _ := strconv.Atoi(fields[1])
				if article, ok := parseArticle(fields[2:]); ok && id > 0 {
					app.SaveArticle(ctx, id, article)
				}
			}
		case "suppr":
			if len(fields) >= 2 {
				id, _ := strconv.Atoi(fields[1])
				app.DeleteArticle(ctx, id)
			}
		case "historique":
			preset, filter := parseHistoryArgs(fields[1:])
			app.ShowHistory(ctx, preset, filter)
		case "sync":
			app.SyncNow(ctx)
		case "restore":
			app.Restore(ctx)
		case "quit", "exit":
			return
		default:
			fmt.Println(usage)
		}
	}
}

func parseArticle(fields []string) (models.Article, bool) {
	if len(fields) < 4 {
		return models.Article{}, false
	}

	stock, err := strconv.Atoi(fields[1])
	if err != nil {
		return models.Article{}, false
	}
	price, err := decimal.NewFromString(fields[2])
	if err != nil {
		return models.Article{}, false
	}
	minStock, err := strconv.Atoi(fields[3])
	if err != nil {
		return models.Article{}, false
	}

	return models.Article{
		Name:      fields[0],
		Stock:     stock,
		UnitPrice: price,
		MinStock:  minStock,
	}, true
}

func parseHistoryArgs(fields []string) (preset history.Preset, filter string) {
	preset = history.PresetAll
	if len(fields) > 0 {
		switch history.Preset(fields[0]) {
		case history.PresetToday, history.PresetWeek, history.PresetMonth, history.PresetAll:
			preset = history.Preset(fields[0])
			fields = fields[1:]
		}
	}
	filter = strings.Join(fields, " ")
	return preset, filter
}
