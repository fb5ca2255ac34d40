package progression

import "onboarding/backend/internal/model"

// Curriculum 实例化快照的输入：模板内容 + 课程章节索引（courseID → 章节 ID 列表）
type Curriculum struct {
	Content  model.TemplateContent
	Sections map[string][]string
}

// Instantiate 将课程表深拷贝为全新的培训快照
//
// 所有 finished 清零、分数清零；快照与模板、与其他学员的快照不共享任何切片。
// 课程完成状态按章节推导，无章节的课程视为已完成。
func Instantiate(cur Curriculum) *model.TrainingSnapshot {
	content := cur.Content
	snap := &model.TrainingSnapshot{
		Exams:   make([]model.ExamRecord, 0, len(content.Exams)),
		Tasks:   make([]model.TaskRecord, 0, len(content.Tasks)),
		Courses: make([]model.CourseRecord, 0, len(content.Courses)),
	}

	for _, ref := range content.Exams {
		snap.Exams = append(snap.Exams, model.ExamRecord{
			ID:   ref.ID,
			Day:  ref.Day,
			Tags: copyTags(ref.Tags),
		})
	}
	for _, ref := range content.Tasks {
		snap.Tasks = append(snap.Tasks, model.TaskRecord{
			ID:   ref.ID,
			Day:  ref.Day,
			Tags: copyTags(ref.Tags),
		})
	}
	for _, ref := range content.Courses {
		sectionIDs := cur.Sections[ref.ID]
		sections := make([]model.SectionRecord, 0, len(sectionIDs))
		for _, sid := range sectionIDs {
			sections = append(sections, model.SectionRecord{ID: sid})
		}
		snap.Courses = append(snap.Courses, model.CourseRecord{
			ID:         ref.ID,
			Day:        ref.Day,
			Tags:       copyTags(ref.Tags),
			IsOptional: ref.IsOptional,
			Finished:   allSectionsFinished(sections),
			Sections:   sections,
		})
	}

	return snap
}

func copyTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

func allSectionsFinished(sections []model.SectionRecord) bool {
	for _, s := range sections {
		if !s.Finished {
			return false
		}
	}
	return true
}
