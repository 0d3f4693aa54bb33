package models

// Tag classification tiers derived from the catalog difficulty distribution.
const (
	ClassCoreConcept          = "core_concept"
	ClassFundamentalTechnique = "fundamental_technique"
	ClassAdvancedTechnique    = "advanced_technique"
)

type DifficultyDistribution struct {
	Easy   int `bson:"easy" json:"easy"`
	Medium int `bson:"medium" json:"medium"`
	Hard   int `bson:"hard" json:"hard"`
}

func (d DifficultyDistribution) Total() int {
	return d.Easy + d.Medium + d.Hard
}

type RelatedTag struct {
	Tag      string  `bson:"tag" json:"tag"`
	Strength float64 `bson:"strength" json:"strength"`
}

// TagNode is one node of the tag co-occurrence graph. Nodes are rebuilt
// wholesale by the batch pipeline and never partially mutated.
type TagNode struct {
	Tag                    string                 `bson:"_id" json:"tag"`
	Classification         string                 `bson:"classification" json:"classification"`
	DifficultyDistribution DifficultyDistribution `bson:"difficulty_distribution" json:"difficulty_distribution"`
	RelatedTags            []RelatedTag           `bson:"related_tags" json:"related_tags"`
	MasteryThreshold       float64                `bson:"mastery_threshold" json:"mastery_threshold"`
	MinAttemptsRequired    int                    `bson:"min_attempts_required" json:"min_attempts_required"`
}
