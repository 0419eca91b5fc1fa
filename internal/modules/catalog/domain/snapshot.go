package domain

import "time"

// Collection names one of the five cached collections.
type Collection string

const (
	CollectionNotes      Collection = "notes"
	CollectionFlashcards Collection = "flashcards"
	CollectionTasks      Collection = "tasks"
	CollectionSessions   Collection = "sessions"
	CollectionProgress   Collection = "progress"
)

// Snapshot is the last confirmed server state. Generation counts successful
// refreshes; zero means nothing has been loaded yet.
type Snapshot struct {
	Notes       []Note
	Flashcards  []Flashcard
	Tasks       []Task
	Sessions    []StudySession
	Progress    Progress
	Generation  uint64
	RefreshedAt time.Time
}

func (s Snapshot) Clone() Snapshot {
	out := s
	out.Notes = append([]Note(nil), s.Notes...)
	out.Flashcards = append([]Flashcard(nil), s.Flashcards...)
	out.Tasks = append([]Task(nil), s.Tasks...)
	out.Sessions = append([]StudySession(nil), s.Sessions...)
	out.Progress.Badges = append([]string(nil), s.Progress.Badges...)
	return out
}

func (s Snapshot) NoteByID(id string) (Note, bool) {
	for _, n := range s.Notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// PartitionTasks splits tasks by their completed flag, keeping input order.
func PartitionTasks(tasks []Task) (pending, completed []Task) {
	pending = []Task{}
	completed = []Task{}
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}
