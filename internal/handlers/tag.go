package handlers

import (
	"net/http"
	"time"

	"askstack/internal/db"
	"askstack/internal/models"
	"askstack/internal/utils"

	"github.com/gin-gonic/gin"
)

const popularTagsCacheKey = "tags:popular"

type TagHandler struct{}

func NewTagHandler() *TagHandler {
	return &TagHandler{}
}

const tagQuestionCountExpr = `(SELECT COUNT(*) FROM question_tags WHERE question_tags.tag_id = tags.id)`

func fillTagCounts(tags []models.Tag) {
	if len(tags) == 0 {
		return
	}

	ids := make([]uint, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}

	type countRow struct {
		TagID uint
		Count int
	}
	var counts []countRow
	db.DB.Table("question_tags").
		Select("tag_id, COUNT(*) as count").
		Where("tag_id IN ?", ids).
		Group("tag_id").
		Scan(&counts)

	countMap := make(map[uint]int, len(counts))
	for _, r := range counts {
		countMap[r.TagID] = r.Count
	}
	for i := range tags {
		tags[i].QuestionCount = countMap[tags[i].ID]
	}
}

// Search matches tags by name fragment, most used first.
func (h *TagHandler) Search(c *gin.Context) {
	limit := utils.StringToInt(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	query := db.DB.Model(&models.Tag{})
	if q := c.Query("q"); q != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+q+"%")
	}

	var tags []models.Tag
	if err := query.Order(tagQuestionCountExpr + " DESC").Limit(limit).Find(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}
	fillTagCounts(tags)

	c.JSON(http.StatusOK, tags)
}

// Popular returns the most used tags, cached briefly since the list moves
// slowly.
func (h *TagHandler) Popular(c *gin.Context) {
	if cached := utils.GetCache().Get(popularTagsCacheKey); cached != nil {
		if tags, ok := cached.([]models.Tag); ok {
			c.JSON(http.StatusOK, tags)
			return
		}
	}

	var tags []models.Tag
	if err := db.DB.Order(tagQuestionCountExpr + " DESC").Limit(20).Find(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}
	fillTagCounts(tags)

	utils.GetCache().Set(popularTagsCacheKey, tags, 5*time.Minute)
	c.JSON(http.StatusOK, tags)
}
