package taggraph

import (
	"math"
	"sort"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"
)

// Base mastery thresholds per classification tier.
var baseMasteryThresholds = map[string]float64{
	models.ClassCoreConcept:          0.75,
	models.ClassFundamentalTechnique: 0.80,
	models.ClassAdvancedTechnique:    0.85,
}

const (
	minAttemptsFloor   = 6
	minAttemptsCeiling = 30
)

// Classify assigns a tag its difficulty tier from the catalog distribution.
// Rules apply in order; later rules override earlier ones.
func Classify(dist models.DifficultyDistribution) string {
	total := dist.Total()

	complexityRatio := 1.0 // empty tags default to advanced
	if total > 0 {
		complexityRatio = (float64(dist.Hard) + 0.5*float64(dist.Medium)) / float64(total)
	}

	classification := models.ClassAdvancedTechnique

	if total >= 150 || (dist.Easy > dist.Hard && dist.Easy >= 10) {
		classification = models.ClassCoreConcept
	}

	if (dist.Medium >= dist.Easy && dist.Medium >= dist.Hard) || (total >= 50 && total < 150) {
		classification = models.ClassFundamentalTechnique
	}

	if (dist.Hard > dist.Easy && dist.Hard > dist.Medium) || total < 50 || complexityRatio >= 0.7 {
		classification = models.ClassAdvancedTechnique
	}

	// Medium-heavy tags are never advanced.
	if dist.Medium > dist.Hard && classification == models.ClassAdvancedTechnique {
		classification = models.ClassFundamentalTechnique
	}

	return classification
}

// MasteryThreshold derives the success-rate bar for a tag. Hard-heavy tags
// get a small discount so mastery stays reachable.
func MasteryThreshold(classification string, dist models.DifficultyDistribution) float64 {
	threshold, ok := baseMasteryThresholds[classification]
	if !ok {
		threshold = baseMasteryThresholds[models.ClassAdvancedTechnique]
	}
	if total := dist.Total(); total > 0 && float64(dist.Hard)/float64(total) > 0.6 {
		threshold -= 0.05
	}
	return math.Round(threshold*100) / 100
}

// MinAttemptsRequired scales the attempt floor with tag coverage and catalog
// size, clamped to [6, 30].
func MinAttemptsRequired(dist models.DifficultyDistribution) int {
	tiers := 0
	if dist.Easy > 0 {
		tiers++
	}
	if dist.Medium > 0 {
		tiers++
	}
	if dist.Hard > 0 {
		tiers++
	}

	baseCoverage := tiers * 2
	scalingFactor := int(math.Ceil(math.Sqrt(float64(dist.Total()) / 10)))

	required := baseCoverage + scalingFactor
	if required < minAttemptsFloor {
		return minAttemptsFloor
	}
	if required > minAttemptsCeiling {
		return minAttemptsCeiling
	}
	return required
}

// BuildNodes runs the full build+classify pipeline and returns the tag nodes
// in deterministic order, ready for a wholesale store rewrite.
func BuildNodes(problems []models.Problem) []models.TagNode {
	graph := Build(problems)

	tags := make([]string, 0, len(graph.Distributions))
	for tag := range graph.Distributions {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	nodes := make([]models.TagNode, 0, len(tags))
	for _, tag := range tags {
		dist := graph.Distributions[tag]
		classification := Classify(dist)
		nodes = append(nodes, models.TagNode{
			Tag:                    tag,
			Classification:         classification,
			DifficultyDistribution: dist,
			RelatedTags:            graph.Related[tag],
			MasteryThreshold:       MasteryThreshold(classification, dist),
			MinAttemptsRequired:    MinAttemptsRequired(dist),
		})
	}
	return nodes
}
