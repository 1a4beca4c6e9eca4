package domain

// Company is the employer block attached to a candidate profile.
type Company struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

// Candidate is a person in the interview pipeline, sourced from the ATS.
type Candidate struct {
	ID        int     `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Company   Company `json:"company"`
}

// FullName returns "First Last" for display.
func (c Candidate) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Initials returns the avatar initials, e.g. "JD" for John Doe.
func (c Candidate) Initials() string {
	var out []rune
	for _, part := range []string{c.FirstName, c.LastName} {
		for _, r := range part {
			out = append(out, r)
			break
		}
	}
	return string(out)
}

// CandidatePage is one page of a candidate listing plus the collection total.
type CandidatePage struct {
	Items []Candidate
	Total int
}

// Todo is an interview-schedule item tied to a candidate.
type Todo struct {
	ID        int    `json:"id"`
	Todo      string `json:"todo"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}

// Reactions is the like/dislike tally on a candidate note.
type Reactions struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
}

// Post is a historical feedback note tied to a candidate.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UserID    int       `json:"userId"`
	Tags      []string  `json:"tags"`
	Reactions Reactions `json:"reactions"`
}
