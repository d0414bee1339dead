// Package recommend computes the skill match score between a candidate's
// skill list and a job's required-skill list.
package recommend

import (
	"math"
	"strings"

	"skillsync-backend/internal/model"
)

// NormalizeSkills lowercases and trims every skill, dropping empty entries.
// A nil list normalizes to an empty one, never an error.
func NormalizeSkills(skills []string) []string {
	normalized := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			normalized = append(normalized, s)
		}
	}
	return normalized
}

// MatchPercentage scores how well userSkills cover jobSkills as an integer
// percentage in [0, 100]. A job skill counts as matched when it contains, or
// is contained by, at least one user skill. The containment is deliberately
// bidirectional substring matching ("node" matches "node.js" and vice versa),
// not exact equality. A job with no required skills scores 0.
func MatchPercentage(userSkills, jobSkills []string) int {
	job := NormalizeSkills(jobSkills)
	if len(job) == 0 {
		return 0
	}
	user := NormalizeSkills(userSkills)

	matched := 0
	for _, js := range job {
		for _, us := range user {
			if strings.Contains(us, js) || strings.Contains(js, us) {
				matched++
				break
			}
		}
	}

	return int(math.Round(float64(matched) / float64(len(job)) * 100))
}

// ScoreJobs annotates every job with its match percentage against userSkills.
// Order of the input slice is preserved.
func ScoreJobs(userSkills []string, jobs []model.Job) []model.ScoredJob {
	scored := make([]model.ScoredJob, 0, len(jobs))
	for _, job := range jobs {
		scored = append(scored, model.ScoredJob{
			Job:             job,
			MatchPercentage: MatchPercentage(userSkills, job.RequiredSkills),
		})
	}
	return scored
}
