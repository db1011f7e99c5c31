package seed

import "pressroom/internal/domain/entity"

// PeopleFactory generates a person with a male first name and a paragraph for twitter.
func PeopleFactory(src TextSource, _ ReferencePicker) (entity.Record, error) {
	return entity.Person{
		FirstName: src.FirstNameMale(),
		LastName:  src.LastName(),
		Twitter:   src.Paragraph(),
	}, nil
}

// ArticleFactory generates an article with a short title.
func ArticleFactory(src TextSource, refs ReferencePicker) (entity.Record, error) {
	authorID, err := refs.Pick(entity.TypePeople)
	if err != nil {
		return nil, err
	}
	return entity.Article{
		AuthorID: authorID,
		Title:    src.Title(),
	}, nil
}

// CommentFactory generates a comment with a paragraph body.
func CommentFactory(src TextSource, refs ReferencePicker) (entity.Record, error) {
	articleID, err := refs.Pick(entity.TypeArticle)
	if err != nil {
		return nil, err
	}
	authorID, err := refs.Pick(entity.TypePeople)
	if err != nil {
		return nil, err
	}
	return entity.Comment{
		ArticleID: articleID,
		AuthorID:  authorID,
		Body:      src.Paragraph(),
	}, nil
}
