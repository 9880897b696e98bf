package uploadValidator

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// MaxVideoSize caps the total course video upload at 300MB. The assembly step
// enforces it against the actual bytes received, not just the declared size.
const MaxVideoSize = 300 * 1024 * 1024

var allowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
}

// ChunkMeta carries the resumable-upload form fields for one chunk.
type ChunkMeta struct {
	CourseID    uint
	Filename    string
	ChunkNumber int
	TotalChunks int
	TotalSize   int64
}

// CourseVideoChunk validates one chunk of a resumable course video upload.
func CourseVideoChunk() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		meta := &ChunkMeta{
			Filename:    c.FormValue("resumableFilename"),
			ChunkNumber: parseFormInt(c, "resumableChunkNumber"),
			TotalChunks: parseFormInt(c, "resumableTotalChunks"),
			TotalSize:   int64(parseFormInt(c, "resumableTotalSize")),
		}
		if courseID := parseFormInt(c, "course_id"); courseID > 0 {
			meta.CourseID = uint(courseID)
		} else {
			errors["course_id"] = "Course ID is required!"
		}

		if meta.Filename == "" {
			errors["resumableFilename"] = "Filename is required!"
		} else {
			ext := strings.ToLower(filepath.Ext(meta.Filename))
			if !allowedVideoExtensions[ext] {
				errors["resumableFilename"] = "The file must be one of the following extensions: mp4, mov, avi, mkv, webm"
			}
		}

		if meta.ChunkNumber < 1 {
			errors["resumableChunkNumber"] = "Chunk number is required!"
		}
		if meta.TotalChunks < 1 {
			errors["resumableTotalChunks"] = "Total chunks is required!"
		}
		if meta.TotalSize < 1 {
			errors["resumableTotalSize"] = "Total size is required!"
		} else if meta.TotalSize > MaxVideoSize {
			errors["resumableTotalSize"] = "The upload may not be greater than 300MB!"
		}

		if _, err := c.FormFile("file"); err != nil {
			errors["file"] = "Chunk file is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChunk", meta)
		return c.Next()
	}
}

func parseFormInt(c *fiber.Ctx, field string) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.FormValue(field)))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
