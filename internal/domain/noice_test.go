package domain

import "testing"

func TestNoice_TotalAmount_SumsNestedReactions(t *testing.T) {
	// Arrange: a 100-point noice with a 50-point reaction that itself
	// carries a 20-point reaction.
	postID := GeneratePostID()
	root := NewNoice(GenerateUserID(), postID, MustNoiceAmount(100))
	mid := NewNoice(GenerateUserID(), postID, MustNoiceAmount(50))
	leaf := NewNoice(GenerateUserID(), postID, MustNoiceAmount(20))

	// Act
	mid = mid.AddNoice(leaf)
	root = root.AddNoice(mid)

	// Assert
	if got := root.TotalAmount(); got != 170 {
		t.Errorf("TotalAmount: got %d, want 170", got)
	}
}

func TestNoice_TotalAmount_DeepChain_DoesNotOverflowStack(t *testing.T) {
	// Arrange
	postID := GeneratePostID()
	n := NewNoice(GenerateUserID(), postID, MustNoiceAmount(1))
	for i := 0; i < 10000; i++ {
		parent := NewNoice(GenerateUserID(), postID, MustNoiceAmount(1))
		n = parent.AddNoice(n)
	}

	// Act / Assert
	if got := n.TotalAmount(); got != 10001 {
		t.Errorf("TotalAmount: got %d, want 10001", got)
	}
}

func TestNoice_AddNoice_DoesNotMutateReceiver(t *testing.T) {
	// Arrange
	postID := GeneratePostID()
	original := NewNoice(GenerateUserID(), postID, MustNoiceAmount(10))
	child := NewNoice(GenerateUserID(), postID, MustNoiceAmount(5))

	// Act
	updated := original.AddNoice(child)

	// Assert
	if original.NoiceCount() != 0 {
		t.Errorf("original NoiceCount: got %d, want 0", original.NoiceCount())
	}
	if updated.NoiceCount() != 1 {
		t.Errorf("updated NoiceCount: got %d, want 1", updated.NoiceCount())
	}
}

func TestNewNoiceWithComment_EmptyComment_Fails(t *testing.T) {
	_, err := NewNoiceWithComment(GenerateUserID(), GeneratePostID(), MustNoiceAmount(1), "   ")
	if err == nil {
		t.Error("expected error for blank comment")
	}
}

func TestNewNoiceWithComment_TooLong_Fails(t *testing.T) {
	long := make([]rune, MaxNoiceCommentLength+1)
	for i := range long {
		long[i] = 'x'
	}

	_, err := NewNoiceWithComment(GenerateUserID(), GeneratePostID(), MustNoiceAmount(1), string(long))
	if err == nil {
		t.Error("expected error for over-long comment")
	}
}

func TestNoice_NoicesByUser_FiltersDirectReactions(t *testing.T) {
	// Arrange
	postID := GeneratePostID()
	user := GenerateUserID()
	root := NewNoice(GenerateUserID(), postID, MustNoiceAmount(1))
	root = root.AddNoice(NewNoice(user, postID, MustNoiceAmount(2)))
	root = root.AddNoice(NewNoice(GenerateUserID(), postID, MustNoiceAmount(3)))
	root = root.AddNoice(NewNoice(user, postID, MustNoiceAmount(4)))

	// Act
	mine := root.NoicesByUser(user)

	// Assert
	if len(mine) != 2 {
		t.Fatalf("NoicesByUser: got %d, want 2", len(mine))
	}
	for _, n := range mine {
		if !n.IsFromUser(user) {
			t.Errorf("noice %s not from expected user", n.ID().String())
		}
	}
}
