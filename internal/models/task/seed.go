package task

import "time"

// SeedV1 - набор задач, который видит новый пользователь при первом запуске.
// Каждый вызов возвращает новые копии.
func SeedV1() []Task {
	return []Task{
		{
			ID:          "1",
			Title:       "Complete React Todo App",
			Description: "Build a comprehensive todo application with authentication and real-time features",
			Status:      StatusInProgress,
			Priority:    PriorityHigh,
			DueDate:     MustParseDate("2025-01-10"),
			CreatedAt:   time.Date(2025, time.January, 5, 10, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, time.January, 5, 10, 0, 0, 0, time.UTC),
			Tags:        []string{"React", "Frontend"},
			SharedWith:  []string{},
		},
		{
			ID:          "2",
			Title:       "Setup MongoDB Database",
			Description: "Configure MongoDB Atlas for production deployment",
			Status:      StatusCompleted,
			Priority:    PriorityMedium,
			DueDate:     MustParseDate("2025-01-08"),
			CreatedAt:   time.Date(2025, time.January, 4, 14, 30, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, time.January, 5, 9, 15, 0, 0, time.UTC),
			Tags:        []string{"Database", "Backend"},
			SharedWith:  []string{"team@example.com"},
		},
		{
			ID:          "3",
			Title:       "Deploy to Production",
			Description: "Deploy frontend to Vercel and backend to Render",
			Status:      StatusTodo,
			Priority:    PriorityHigh,
			DueDate:     MustParseDate("2025-01-12"),
			CreatedAt:   time.Date(2025, time.January, 5, 16, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, time.January, 5, 16, 0, 0, 0, time.UTC),
			Tags:        []string{"Deployment", "DevOps"},
			SharedWith:  []string{},
		},
	}
}
