package domain

import "strings"

// RecentResponseLimit caps the recent_responses list regardless of window size.
const RecentResponseLimit = 10

const (
	anonymousName    = "Anonymous"
	missingEmail     = "No email"
	unknownTimestamp = "Unknown"
)

// Statistics is the aggregate view served to the results page.
type Statistics struct {
	TotalResponses           int              `json:"total_responses"`
	AvgSatisfaction          float64          `json:"avg_satisfaction"`
	CompletionRate           float64          `json:"completion_rate"`
	SatisfactionDistribution map[int]int      `json:"satisfaction_distribution"`
	RecentResponses          []RecentResponse `json:"recent_responses"`
}

// RecentResponse is one entry of the recent_responses list.
type RecentResponse struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Age          *string `json:"age"`
	Satisfaction int     `json:"satisfaction"`
	Feedback     *string `json:"feedback"`
	Timestamp    string  `json:"timestamp"`
}

// EmptyStatistics is the result for a window without records.
func EmptyStatistics() Statistics {
	return Statistics{
		SatisfactionDistribution: map[int]int{},
		RecentResponses:          []RecentResponse{},
	}
}

// Summarize computes statistics over a window that is already ordered newest first.
func Summarize(window []SurveyResponse) Statistics {
	if len(window) == 0 {
		return EmptyStatistics()
	}

	distribution := make(map[int]int, MaxSatisfaction)
	for score := MinSatisfaction; score <= MaxSatisfaction; score++ {
		distribution[score] = 0
	}

	sum := 0
	completed := 0
	for _, response := range window {
		sum += response.Satisfaction
		if _, ok := distribution[response.Satisfaction]; ok {
			distribution[response.Satisfaction]++
		}
		if response.IsComplete() {
			completed++
		}
	}

	total := len(window)
	return Statistics{
		TotalResponses:           total,
		AvgSatisfaction:          float64(sum) / float64(total),
		CompletionRate:           float64(completed) / float64(total) * 100,
		SatisfactionDistribution: distribution,
		RecentResponses:          recentResponses(window),
	}
}

func recentResponses(window []SurveyResponse) []RecentResponse {
	size := len(window)
	if size > RecentResponseLimit {
		size = RecentResponseLimit
	}

	result := make([]RecentResponse, 0, size)
	for _, response := range window[:size] {
		result = append(result, RecentResponse{
			Name:         withDefault(response.Name, anonymousName),
			Email:        withDefault(response.Email, missingEmail),
			Age:          response.Age,
			Satisfaction: response.Satisfaction,
			Feedback:     response.Feedback,
			Timestamp:    withDefault(response.Timestamp, unknownTimestamp),
		})
	}
	return result
}

func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
