package chat

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const insightsChartHeight = "360px"

// TopicCount is one row of the topic breakdown table.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// InsightsReport summarizes recent chat activity for the admin console.
type InsightsReport struct {
	Total     int          `json:"total"`
	Topics    []TopicCount `json:"topics"`
	ChartHTML string       `json:"chart_html"`
}

// Insights aggregates chat logs into a report with a rendered volume chart.
type Insights struct {
	logs  LogStore
	cache *RenderCache
	theme string
	clock func() time.Time
}

// NewInsights builds the aggregator. Rendered charts are cached for five
// minutes; insights tolerate slightly stale data.
func NewInsights(logs LogStore) *Insights {
	return &Insights{
		logs:  logs,
		cache: NewRenderCache(5 * time.Minute),
		theme: types.ThemeWesteros,
		clock: time.Now,
	}
}

// Report aggregates the last lookback days of chat traffic.
func (i *Insights) Report(ctx context.Context, lookbackDays int) (InsightsReport, error) {
	if lookbackDays <= 0 {
		lookbackDays = 14
	}
	now := i.clock().UTC()
	since := now.AddDate(0, 0, -lookbackDays)
	entries, err := i.logs.ListEntries(ctx, since)
	if err != nil {
		return InsightsReport{}, err
	}

	byTopic := map[string]int{}
	byDay := map[string]int{}
	for _, e := range entries {
		topic := e.Topic
		if topic == "" {
			topic = "unmatched"
		}
		byTopic[topic]++
		byDay[e.CreatedAt.UTC().Format("2006-01-02")]++
	}

	topics := make([]TopicCount, 0, len(byTopic))
	for topic, count := range byTopic {
		topics = append(topics, TopicCount{Topic: topic, Count: count})
	}
	sort.Slice(topics, func(a, b int) bool {
		if topics[a].Count != topics[b].Count {
			return topics[a].Count > topics[b].Count
		}
		return topics[a].Topic < topics[b].Topic
	})

	days := make([]string, 0, lookbackDays)
	counts := make([]opts.LineData, 0, lookbackDays)
	for d := 0; d < lookbackDays; d++ {
		day := since.AddDate(0, 0, d+1).Format("2006-01-02")
		days = append(days, day)
		counts = append(counts, opts.LineData{Value: byDay[day]})
	}

	cacheKey := fmt.Sprintf("volume:%d:%s:%d", lookbackDays, now.Format("2006-01-02T15:04"), len(entries))
	chartHTML, err := i.cache.GetOrRender(cacheKey, func() (string, error) {
		return i.renderVolumeChart(days, counts)
	})
	if err != nil {
		return InsightsReport{}, err
	}

	return InsightsReport{
		Total:     len(entries),
		Topics:    topics,
		ChartHTML: chartHTML,
	}, nil
}

func (i *Insights) renderVolumeChart(days []string, counts []opts.LineData) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Chat Volume", Subtitle: "Messages per day"}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  i.theme,
			Width:  "100%",
			Height: insightsChartHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(days)
	line.AddSeries("Messages", counts)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
