package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/joho/godotenv"

	"github.com/izus-fokus/easyReview/internal/cache"
	"github.com/izus-fokus/easyReview/internal/config"
	"github.com/izus-fokus/easyReview/internal/gateway"
	"github.com/izus-fokus/easyReview/internal/model"
	"github.com/izus-fokus/easyReview/internal/review"
	"github.com/izus-fokus/easyReview/internal/token"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded environment from .env")
	}
	cfg := config.Load()

	shareToken := flag.String("token", "", "share token of the review to open")
	siteURL := flag.String("site-url", "", "Dataverse installation URL (with -doi)")
	doi := flag.String("doi", "", "dataset DOI to resolve")
	apiToken := flag.String("api-token", "", "Dataverse API token for hidden datasets")
	share := flag.String("share", "", "print a share link for the given review id")
	accept := flag.String("accept", "", "record a decision for the given field id")
	decision := flag.Bool("decision", true, "the decision recorded with -accept")
	reviewID := flag.String("review", "", "review id the -accept decision belongs to")
	flag.Parse()

	client := gateway.New(cfg.BackendURL, cfg.BackendUser, cfg.BackendPass)
	client.SetTimeout(cfg.HTTPTimeout)

	var pageCache cache.Store
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		pageCache = redisCache
	} else {
		pageCache = cache.NewMemoryStore()
	}
	defer pageCache.Close()

	store := review.NewStore(cfg.SecretPass)
	codec := token.New(store.SecretPass())
	progress := review.NewProgressService(client, pageCache, store)
	fields := review.NewFieldMutationService(client, pageCache, progress)
	loader := review.NewPageLoader(client, pageCache, progress)
	links := review.NewShareLinks(codec, client)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch {
	case *share != "":
		shareURL, err := links.BuildURL(cfg.ShareBaseURL, *share)
		if err != nil {
			log.Fatalf("build share link: %v", err)
		}
		fmt.Println(shareURL)

	case *accept != "":
		if *reviewID == "" {
			log.Fatalf("-accept needs -review to refresh progress")
		}
		field, percent, err := fields.AcceptFieldAndRefresh(ctx, *accept, *reviewID, *decision)
		if err != nil {
			log.Fatalf("accept field: %v", err)
		}
		fmt.Printf("%s: accepted=%v, review now %d%% reviewed\n", field.Name, *decision, percent)

	case *shareToken != "" || *doi != "":
		query := url.Values{}
		if *shareToken != "" {
			query.Set(review.ParamToken, *shareToken)
		} else {
			query.Set(review.ParamSiteURL, *siteURL)
			query.Set(review.ParamDatasetPID, *doi)
			query.Set(review.ParamAPIToken, *apiToken)
		}
		dataset, err := links.Resolve(ctx, query)
		if err != nil {
			log.Fatalf("resolve review: %v", err)
		}

		page, err := loader.LoadPage(ctx, dataset.ID)
		if err != nil {
			log.Fatalf("load review %s: %v", dataset.ID, err)
		}
		printPage(page)

	default:
		flag.Usage()
	}
}

func printPage(page review.Page) {
	fmt.Printf("%s (revision %d) - %d%% reviewed\n", page.Dataset.DOI, page.Dataset.Revision, page.Progress)
	for _, block := range page.Dataset.Metadatablocks {
		fmt.Printf("  [%s]\n", block.Name)
		for _, field := range block.Primitives {
			fmt.Printf("    %-30s %s\n", field.Name, decisionMark(field.Accepted))
		}
		for _, compound := range block.Compounds {
			fmt.Printf("    %-30s %s\n", compound.Name, compoundMark(compound))
			for _, field := range compound.Primitives {
				fmt.Printf("      %-28s %s\n", field.Name, decisionMark(field.Accepted))
			}
		}
	}
	for _, open := range page.Open {
		fmt.Printf("  open in %s: %d primitives, %d compounds\n", open.Name, len(open.Primitives), len(open.Compounds))
	}
}

func decisionMark(accepted *bool) string {
	switch {
	case accepted == nil:
		return "·"
	case *accepted:
		return "accepted"
	default:
		return "declined"
	}
}

func compoundMark(c model.Compound) string {
	if c.Accepted() {
		return "accepted"
	}
	return "·"
}
