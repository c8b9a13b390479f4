// Package telemetry - telemetry/metrics.go
// Optional CloudWatch metric publication for competition activity.
package telemetry

import (
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"

	"go-hb-scoreboard/logger"
)

// Namespace for all scoreboard metrics
var metricsNamespace = "HighBarScoreboard"

var (
	cwOnce   sync.Once
	cwClient *cloudwatch.CloudWatch
)

// enabled gates every publish call; metrics stay off unless the deployment
// opts in with METRICS_ENABLED=true.
func enabled() bool {
	return os.Getenv("METRICS_ENABLED") == "true"
}

func client() *cloudwatch.CloudWatch {
	cwOnce.Do(func() {
		cwClient = cloudwatch.New(session.Must(session.NewSession()))
	})
	return cwClient
}

// PublishConfirmedPerformance counts a confirm (or re-edit) for a competition.
func PublishConfirmedPerformance(competitionID string) {
	putMetric("ConfirmedPerformances", 1, "Count", competitionID)
}

// PublishJudgeSubmission counts one raw judge score submission.
func PublishJudgeSubmission(competitionID string) {
	putMetric("JudgeSubmissions", 1, "Count", competitionID)
}

// PublishActiveJudges pushes a gauge of judge seats currently polling.
func PublishActiveJudges(count int, competitionID string) {
	putMetric("ActiveJudges", float64(count), "Count", competitionID)
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func putMetric(metricName string, value float64, unit string, competitionID string) {
	if !enabled() {
		return
	}
	_, err := client().PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Dimensions: []*cloudwatch.Dimension{
					{
						Name:  aws.String("CompetitionId"),
						Value: aws.String(competitionID),
					},
				},
				Timestamp: aws.Time(time.Now()),
				Value:     aws.Float64(value),
				Unit:      aws.String(unit),
			},
		},
	})

	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}
