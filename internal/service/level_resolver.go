package service

import (
	"sort"

	"github.com/eduquest/admin-api/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

// BuiltinLevels is the threshold table used when configuracion_niveles is empty.
func BuiltinLevels() []models.LevelThreshold {
	return []models.LevelThreshold{
		{Level: 1, Name: "Principiante", MinPoints: 0, MaxPoints: int64Ptr(99), Icon: "🌱", Description: "Nivel inicial para nuevos estudiantes", Active: true},
		{Level: 2, Name: "Principiante+", MinPoints: 100, MaxPoints: int64Ptr(499), Icon: "🌿", Description: "Estudiante que ha comenzado a ganar experiencia", Active: true},
		{Level: 3, Name: "Intermedio", MinPoints: 500, MaxPoints: int64Ptr(999), Icon: "🌳", Description: "Estudiante con conocimiento intermedio", Active: true},
		{Level: 4, Name: "Avanzado", MinPoints: 1000, MaxPoints: int64Ptr(2499), Icon: "⭐", Description: "Estudiante avanzado con buen rendimiento", Active: true},
		{Level: 5, Name: "Experto", MinPoints: 2500, MaxPoints: int64Ptr(4999), Icon: "🌟", Description: "Estudiante experto con excelente rendimiento", Active: true},
		{Level: 6, Name: "Maestro", MinPoints: 5000, Icon: "👑", Description: "Nivel máximo alcanzable - Maestro del sistema", Active: true},
	}
}

// ResolveLevel maps a point total to the highest level whose range contains it.
// A total no range contains (a gap, or above a bounded top level) keeps the
// highest level already reached. An empty table falls back to BuiltinLevels and
// a total below every minimum resolves to the lowest level.
func ResolveLevel(points int64, thresholds []models.LevelThreshold) models.ResolvedLevel {
	if len(thresholds) == 0 {
		thresholds = BuiltinLevels()
	}
	sorted := make([]models.LevelThreshold, len(thresholds))
	copy(sorted, thresholds)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })

	current, reached := -1, 0
	for i, threshold := range sorted {
		if threshold.Contains(points) {
			current = i
		}
		if threshold.MinPoints <= points {
			reached = i
		}
	}
	if current < 0 {
		current = reached
	}

	level := sorted[current]
	resolved := models.ResolvedLevel{Level: level.Level, Name: level.Name, Icon: level.Icon}
	if current+1 < len(sorted) {
		next := sorted[current+1]
		nextLevel := next.Level
		resolved.NextLevel = &nextLevel
		if gap := next.MinPoints - points; gap > 0 {
			resolved.PointsToNext = gap
		}
	}
	return resolved
}
