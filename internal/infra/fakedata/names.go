package fakedata

// gofakeit has no gendered first names.
var maleFirstNames = []string{
	"Aaron", "Adam", "Adrian", "Alan", "Albert", "Alexander", "Andrew", "Anthony",
	"Arthur", "Benjamin", "Bernard", "Brandon", "Brian", "Bruce", "Carl", "Charles",
	"Christopher", "Daniel", "David", "Dennis", "Donald", "Douglas", "Edward", "Eric",
	"Eugene", "Frank", "Gary", "George", "Gerald", "Gregory", "Harold", "Henry",
	"Jack", "Jacob", "James", "Jason", "Jeffrey", "Jeremy", "Jerry", "Joe",
	"John", "Jonathan", "Joseph", "Joshua", "Justin", "Keith", "Kenneth", "Kevin",
	"Larry", "Lawrence", "Louis", "Mark", "Matthew", "Michael", "Nathan", "Nicholas",
	"Patrick", "Paul", "Peter", "Philip", "Ralph", "Raymond", "Richard", "Robert",
	"Roger", "Ronald", "Roy", "Russell", "Ryan", "Samuel", "Scott", "Sean",
	"Stephen", "Steven", "Terry", "Thomas", "Timothy", "Walter", "Wayne", "William",
}
