package directory

import (
	"OperatorsClub/src/core/apperrors"
	"OperatorsClub/src/core/models"
	"OperatorsClub/src/modules/likes"

	"gorm.io/gorm"
)

// CompanyWithTags decorates a company row with its tag labels. Tags is always
// present; an entity with no mappings carries an empty slice, not null.
type CompanyWithTags struct {
	models.Company
	Tags []string `json:"tags"`
}

// RepoWithTags decorates a repo row with its tag labels.
type RepoWithTags struct {
	models.Repo
	Tags []string `json:"tags"`
}

// Handler serves the directory list, detail and liked-by-me views.
type Handler struct {
	DB    *gorm.DB
	Likes *likes.Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Likes: likes.NewService(db)}
}

// tagsForEntities fetches every tag label for the batch in a single join
// query and groups them by entity id. An empty batch short-circuits without
// touching the store.
func tagsForEntities(db *gorm.DB, kind models.EntityKind, ids []int) (map[int][]string, error) {
	tagsByID := make(map[int][]string, len(ids))
	if len(ids) == 0 {
		return tagsByID, nil
	}

	var rows []struct {
		EntityID int
		Tag      string
	}
	query := `
		SELECT et.entity_id, t.tag
		FROM tags t
		JOIN entity_tags et ON t.id = et.tag_id
		WHERE et.entity_kind = ? AND et.entity_id IN ?;
	`
	if err := db.Raw(query, kind, ids).Scan(&rows).Error; err != nil {
		return nil, apperrors.FromStore("directory: fetch tags", err)
	}

	for _, row := range rows {
		tagsByID[row.EntityID] = append(tagsByID[row.EntityID], row.Tag)
	}
	return tagsByID, nil
}

// withCompanyTags decorates the batch while preserving its order.
func (h *Handler) withCompanyTags(companies []models.Company) ([]CompanyWithTags, error) {
	ids := make([]int, len(companies))
	for i, company := range companies {
		ids[i] = company.ID
	}
	tagsByID, err := tagsForEntities(h.DB, models.EntityKindCompany, ids)
	if err != nil {
		return nil, err
	}

	result := make([]CompanyWithTags, len(companies))
	for i, company := range companies {
		tags := tagsByID[company.ID]
		if tags == nil {
			tags = []string{}
		}
		result[i] = CompanyWithTags{Company: company, Tags: tags}
	}
	return result, nil
}

// withRepoTags decorates the batch while preserving its order.
func (h *Handler) withRepoTags(repos []models.Repo) ([]RepoWithTags, error) {
	ids := make([]int, len(repos))
	for i, repo := range repos {
		ids[i] = repo.ID
	}
	tagsByID, err := tagsForEntities(h.DB, models.EntityKindRepo, ids)
	if err != nil {
		return nil, err
	}

	result := make([]RepoWithTags, len(repos))
	for i, repo := range repos {
		tags := tagsByID[repo.ID]
		if tags == nil {
			tags = []string{}
		}
		result[i] = RepoWithTags{Repo: repo, Tags: tags}
	}
	return result, nil
}
