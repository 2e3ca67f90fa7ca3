package usecase

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"site-analytics-service/internal/analytics/core/domain"
	"site-analytics-service/internal/analytics/core/ports"
	"site-analytics-service/internal/analytics/core/stats"
	"site-analytics-service/internal/analytics/core/timerange"

	"github.com/rs/zerolog"
)

const blogWindowDays = 30

type GetBlogEngagementUseCase struct {
	events ports.EventReaderPort
	posts  ports.PostReaderPort
	log    zerolog.Logger
}

func NewGetBlogEngagementUseCase(events ports.EventReaderPort, posts ports.PostReaderPort, log zerolog.Logger) *GetBlogEngagementUseCase {
	return &GetBlogEngagementUseCase{events: events, posts: posts, log: log}
}

type postAccumulator struct {
	views         int
	totalReadTime float64
	scroll75      int
	assistedLeads int
}

func (uc *GetBlogEngagementUseCase) Execute(ctx context.Context) (*domain.BlogMetrics, error) {
	window := timerange.LastDays(blogWindowDays, time.Now().UTC())

	blogReads, err := uc.events.ListEvents(ctx, ports.EventFilter{
		Range: window,
		Names: []string{domain.EventBlogRead},
	})
	if err != nil {
		return nil, err
	}

	ctaClicks, err := uc.events.ListEvents(ctx, ports.EventFilter{
		Range: window,
		Names: []string{domain.EventBlogCTAClick},
	})
	if err != nil {
		return nil, err
	}

	redirects, err := uc.events.ListEvents(ctx, ports.EventFilter{
		Range: window,
		Names: []string{domain.EventWhatsAppClick},
	})
	if err != nil {
		return nil, err
	}

	// Per-post view fold; reads without a post_slug never enter the rollup.
	perPost := map[string]*postAccumulator{}
	readSessions := map[string]struct{}{}
	var totalReadTime float64
	for _, read := range blogReads {
		readSessions[read.SessionID] = struct{}{}
		totalReadTime += read.Props.GetNumber("read_time_sec", 0)

		slug := read.Props.GetString("post_slug", "")
		if slug == "" {
			continue
		}
		acc, ok := perPost[slug]
		if !ok {
			acc = &postAccumulator{}
			perPost[slug] = acc
		}
		acc.views++
		acc.totalReadTime += read.Props.GetNumber("read_time_sec", 0)
		if read.Props.GetBool("scroll_75", false) {
			acc.scroll75++
		}
	}

	// Assisted leads: a redirect is assisted when its session produced a
	// blog_read strictly before it; the most recent such read wins the
	// attribution (last-touch within the session).
	totalAssisted := 0
	for _, redirect := range redirects {
		if _, ok := readSessions[redirect.SessionID]; !ok {
			continue
		}
		totalAssisted++

		var lastRead *domain.EventRecord
		for i := range blogReads {
			read := &blogReads[i]
			if read.SessionID != redirect.SessionID {
				continue
			}
			if !read.OccurredAt.Before(redirect.OccurredAt) {
				continue
			}
			if lastRead == nil || read.OccurredAt.After(lastRead.OccurredAt) {
				lastRead = read
			}
		}
		if lastRead == nil {
			continue
		}
		slug := lastRead.Props.GetString("post_slug", "")
		if acc, ok := perPost[slug]; ok {
			acc.assistedLeads++
		}
	}

	ctaByPost, droppedCTA := groupBlogCTAClicks(ctaClicks)
	if droppedCTA > 0 {
		uc.log.Warn().
			Int("count", droppedCTA).
			Msg("blog cta clicks with unrecognized cta_type excluded from placement buckets")
	}

	titles := uc.resolveTitles(ctx, perPost)

	topPosts := make([]domain.PostEngagement, 0, len(perPost))
	for slug, acc := range perPost {
		avgReadTime := 0
		if acc.views > 0 {
			avgReadTime = int(math.Round(acc.totalReadTime / float64(acc.views)))
		}
		topPosts = append(topPosts, domain.PostEngagement{
			Slug:           slug,
			Title:          titles[slug],
			Views:          acc.views,
			AvgReadTimeSec: avgReadTime,
			Scroll75Rate:   stats.Percentage(acc.scroll75, acc.views),
			AssistedLeads:  acc.assistedLeads,
		})
	}
	sort.SliceStable(topPosts, func(i, j int) bool {
		return topPosts[i].Views > topPosts[j].Views
	})

	avgReadTime := 0
	if len(blogReads) > 0 {
		avgReadTime = int(math.Round(totalReadTime / float64(len(blogReads))))
	}

	return &domain.BlogMetrics{
		TopPosts:           topPosts,
		TotalViews:         len(blogReads),
		TotalAssistedLeads: totalAssisted,
		AvgReadTimeSec:     avgReadTime,
		CTAClicksByPost:    ctaByPost,
	}, nil
}

func groupBlogCTAClicks(clicks []domain.EventRecord) (map[string]domain.CTAClicks, int) {
	out := map[string]domain.CTAClicks{}
	dropped := 0
	for _, click := range clicks {
		slug := click.Props.GetString("post_slug", "")
		if slug == "" {
			continue
		}
		counts := out[slug]
		switch click.Props.GetString("cta_type", "unknown") {
		case "inline":
			counts.Inline++
		case "banner":
			counts.Banner++
		case "footer":
			counts.Footer++
		default:
			dropped++
		}
		out[slug] = counts
	}
	return out, dropped
}

func (uc *GetBlogEngagementUseCase) resolveTitles(ctx context.Context, perPost map[string]*postAccumulator) map[string]string {
	slugs := make([]string, 0, len(perPost))
	for slug := range perPost {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	titles, err := uc.posts.TitlesBySlug(ctx, slugs)
	if err != nil {
		// Titles are decoration; fall back to humanized slugs.
		uc.log.Warn().Err(err).Msg("post title lookup failed, using slugs")
		titles = map[string]string{}
	}
	for _, slug := range slugs {
		if _, ok := titles[slug]; !ok {
			titles[slug] = humanizeSlug(slug)
		}
	}
	return titles
}

func humanizeSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
