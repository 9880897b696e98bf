package uploadController

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	uploadValidator "lms/validators/upload"
)

// UploadCourseVideoChunk receives one chunk of a resumable course intro video
// upload. Chunks are staged per upload under the chunk directory; when the last
// chunk arrives they are assembled into the final video and the course record
// is updated.
func UploadCourseVideoChunk(c *fiber.Ctx) error {
	meta := c.Locals("validatedChunk").(*uploadValidator.ChunkMeta)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", meta.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	chunkDir := filepath.Join(config.AppConfig.ChunkDir, fmt.Sprintf("course_%d_%s", meta.CourseID, sanitizeFilename(meta.Filename)))
	if err := os.MkdirAll(chunkDir, 0755); err != nil {
		log.Printf("Error creating chunk dir %s: %v", chunkDir, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store chunk!", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Chunk file is required!", nil)
	}

	chunkPath := filepath.Join(chunkDir, fmt.Sprintf("chunk_%d", meta.ChunkNumber))
	if err := c.SaveFile(fileHeader, chunkPath); err != nil {
		log.Printf("Error saving chunk %d for course %d: %v", meta.ChunkNumber, meta.CourseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store chunk!", nil)
	}

	if !allChunksPresent(chunkDir, meta.TotalChunks) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Chunk uploaded successfully!", fiber.Map{
			"chunk_number": meta.ChunkNumber,
			"total_chunks": meta.TotalChunks,
			"completed":    false,
		})
	}

	videoPath, err := assembleChunks(chunkDir, meta, uploadValidator.MaxVideoSize)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			return middleware.JsonResponse(c, fiber.StatusRequestEntityTooLarge, false, "The upload may not be greater than 300MB!", nil)
		}
		log.Printf("Error assembling upload for course %d: %v", meta.CourseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assemble uploaded video!", nil)
	}

	oldVideo := course.IntroVideoURL

	err = db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"intro_video_url": videoPath,
		}
		if oldVideo == "" {
			// First intro video for this course counts as a file.
			updates["nr_of_files"] = gorm.Expr("nr_of_files + 1")
		}
		return tx.Model(&models.Course{}).Where("id = ?", course.ID).Updates(updates).Error
	})
	if err != nil {
		log.Printf("Error updating course %d after upload: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course video!", nil)
	}

	if oldVideo != "" {
		if err := os.Remove(oldVideo); err != nil && !os.IsNotExist(err) {
			log.Printf("Error removing old course video %s: %v", oldVideo, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course video uploaded successfully!", fiber.Map{
		"completed": true,
		"video_url": videoPath,
	})
}

// errUploadTooLarge signals that the received chunks exceed the size cap,
// regardless of the size the client declared.
var errUploadTooLarge = errors.New("assembled upload exceeds the size limit")

// assembleChunks concatenates the staged chunks in order into the final video
// file and removes the staging directory. The byte count is checked against
// maxBytes as chunks are written, so an undersized declared total cannot slip
// an oversized upload through.
func assembleChunks(chunkDir string, meta *uploadValidator.ChunkMeta, maxBytes int64) (string, error) {
	destDir := filepath.Join(config.AppConfig.UploadDir, "videos", "courses")
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(meta.Filename))
	videoPath := filepath.Join(destDir, uuid.NewString()+ext)

	dst, err := os.Create(videoPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	var written int64
	for i := 1; i <= meta.TotalChunks; i++ {
		src, err := os.Open(filepath.Join(chunkDir, fmt.Sprintf("chunk_%d", i)))
		if err != nil {
			os.Remove(videoPath)
			return "", err
		}
		n, err := io.Copy(dst, src)
		src.Close()
		if err != nil {
			os.Remove(videoPath)
			return "", err
		}
		written += n
		if written > maxBytes {
			os.Remove(videoPath)
			os.RemoveAll(chunkDir)
			return "", errUploadTooLarge
		}
	}

	if err := os.RemoveAll(chunkDir); err != nil {
		log.Printf("Error cleaning chunk dir %s: %v", chunkDir, err)
	}

	return videoPath, nil
}

func allChunksPresent(chunkDir string, totalChunks int) bool {
	for i := 1; i <= totalChunks; i++ {
		if _, err := os.Stat(filepath.Join(chunkDir, fmt.Sprintf("chunk_%d", i))); err != nil {
			return false
		}
	}
	return true
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
