package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/karloscodes/cartridge"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"

	"adsight/internal/sources"
	"adsight/internal/timeframe"
)

const (
	DefaultDays      = 90
	DefaultCampaigns = 4
	batchSize        = 500
)

// Seeder fills the report source tables with demo data.
type Seeder struct {
	DBManager cartridge.DBManager
	Logger    *slog.Logger
	Days      int
	Campaigns int
	// End is the last seeded day. Zero means today.
	End time.Time

	rng *rand.Rand
}

// NewSeeder creates a seeder. A zero seed picks a random one.
func NewSeeder(dbManager cartridge.DBManager, logger *slog.Logger, days, campaigns int, seed uint64) *Seeder {
	if days <= 0 {
		days = DefaultDays
	}
	if campaigns <= 0 {
		campaigns = DefaultCampaigns
	}
	if campaigns > len(campaignTemplates) {
		campaigns = len(campaignTemplates)
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Seeder{
		DBManager: dbManager,
		Logger:    logger,
		Days:      days,
		Campaigns: campaigns,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

type campaignTemplate struct {
	name     string
	budget   float64
	keywords []string
}

var campaignTemplates = []campaignTemplate{
	{"SP - Yoga Mats - Exact", 1500, []string{"yoga mat", "yoga mat thick", "non slip yoga mat"}},
	{"SP - Yoga Mats - Broad", 1000, []string{"exercise mat", "gym mat", "workout mat for home"}},
	{"SP - Resistance Bands", 800, []string{"resistance bands", "loop bands set", "theraband"}},
	{"SP - Dumbbells - Auto", 1200, []string{"dumbbells", "adjustable dumbbells", "dumbbell set 10kg"}},
	{"SB - Brand Defense", 500, []string{"fitlane", "fitlane yoga mat"}},
	{"SP - Foam Rollers", 600, []string{"foam roller", "foam roller for back"}},
}

var productTemplates = []struct {
	parentASIN string
	skus       []string
	price      float64
}{
	{"B0C1YOGA01", []string{"YM-6MM-PURPLE", "YM-6MM-BLUE", "YM-8MM-BLACK"}, 899},
	{"B0C1BAND02", []string{"RB-LOOP-SET5", "RB-TUBE-SET"}, 499},
	{"B0C1DUMB03", []string{"DB-ADJ-10KG", "DB-HEX-5KG"}, 2499},
	{"B0C1ROLL04", []string{"FR-45CM"}, 699},
}

var matchTypes = []string{"EXACT", "PHRASE", "BROAD"}

// Run generates ads and business rows for every day in the window, replacing
// whatever the tables held before.
func (s *Seeder) Run(ctx context.Context) error {
	start := time.Now()
	s.Logger.Info("Starting database seeding...",
		slog.Int("days", s.Days),
		slog.Int("campaigns", s.Campaigns))

	db := s.DBManager.GetConnection()
	if db == nil {
		return sources.ErrNoConnection
	}

	end := s.End
	if end.IsZero() {
		end = time.Now()
	}
	end = timeframe.Day(end)
	first := end.AddDate(0, 0, -(s.Days - 1))

	ads := s.adsRows(first)
	business := s.businessRows(first)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{sources.AdsTable, sources.BusinessTable} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		if err := tx.CreateInBatches(ads, batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert ads rows: %w", err)
		}
		if err := tx.CreateInBatches(business, batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert business rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Logger.Info("Seeding completed successfully",
		slog.Int("ads_rows", len(ads)),
		slog.Int("business_rows", len(business)),
		slog.String("from", first.Format(timeframe.LabelFormat)),
		slog.String("to", end.Format(timeframe.LabelFormat)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

func (s *Seeder) adsRows(first time.Time) []sources.AdsReport {
	var rows []sources.AdsReport
	for d := 0; d < s.Days; d++ {
		day := first.AddDate(0, 0, d)
		for ci, campaign := range campaignTemplates[:s.Campaigns] {
			campaignID := fmt.Sprintf("%d", 310000000+ci)
			for ki, keyword := range campaign.keywords {
				impressions := int64(200 + s.rng.IntN(4800))
				clicks := int64(float64(impressions) * (0.002 + s.rng.Float64()*0.02))
				bid := round2(4 + s.rng.Float64()*16)
				cost := round2(float64(clicks) * bid * (0.6 + s.rng.Float64()*0.4))
				purchases := int64(float64(clicks) * s.rng.Float64() * 0.15)
				sales := round2(float64(purchases) * (400 + s.rng.Float64()*2000))

				var ctr float64
				if impressions > 0 {
					ctr = round2(float64(clicks) / float64(impressions) * 100)
				}

				rows = append(rows, sources.AdsReport{
					ReportDate:                 day,
					ProfileID:                  "2870019254",
					CampaignID:                 campaignID,
					CampaignName:               campaign.name,
					CampaignStatus:             "ENABLED",
					CampaignBudgetAmount:       campaign.budget,
					CampaignBudgetType:         "DAILY_BUDGET",
					CampaignBudgetCurrencyCode: "INR",
					AdGroupID:                  fmt.Sprintf("%s%02d", campaignID, ki),
					AdGroupName:                "Ad group - " + keyword,
					SearchTerm:                 s.searchTermFor(keyword),
					KeywordInfo:                keyword,
					KeywordType:                "TARGETING_EXPRESSION",
					KeywordBid:                 bid,
					MatchType:                  matchTypes[ki%len(matchTypes)],
					AdKeywordStatus:            "ENABLED",
					Impressions:                impressions,
					Clicks:                     clicks,
					ClickThroughRate:           ctr,
					Cost:                       cost,
					Sales1d:                    sales,
					Purchases1d:                purchases,
				})
			}
		}
	}
	return rows
}

func (s *Seeder) searchTermFor(keyword string) string {
	suffixes := []string{"", "", " for women", " for men", " online", " best"}
	return keyword + suffixes[s.rng.IntN(len(suffixes))]
}

// businessRows stores sales the way upstream exports deliver them:
// currency-formatted text with grouping separators.
func (s *Seeder) businessRows(first time.Time) []sources.SalesTraffic {
	printer := message.NewPrinter(language.English)
	var rows []sources.SalesTraffic
	for d := 0; d < s.Days; d++ {
		day := first.AddDate(0, 0, d)
		for _, product := range productTemplates {
			for _, sku := range product.skus {
				sessions := int64(20 + s.rng.IntN(400))
				pageViews := sessions + int64(s.rng.IntN(int(sessions)+1))
				units := int64(float64(sessions) * s.rng.Float64() * 0.12)
				sales := float64(units) * product.price

				rows = append(rows, sources.SalesTraffic{
					Date:                day,
					ParentASIN:          product.parentASIN,
					SKU:                 sku,
					Sessions:            sessions,
					PageViews:           pageViews,
					UnitsOrdered:        units,
					OrderedProductSales: printer.Sprintf("₹%.2f", sales),
				})
			}
		}
	}
	return rows
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
