package content

import "time"

// Default collection names.
const (
	Blog     = "blog"
	Projects = "projects"
)

// BlogCollection is the blog as published by the site itself: an index at
// /api/blog-files and posts under /BlogArticles. The static posts are dated
// relative to now.
func BlogCollection(now time.Time) Collection {
	c := Collection{
		Name:       Blog,
		Dir:        "BlogArticles",
		IndexPath:  "/api/blog-files",
		SortByDate: true,
		LinkPrefix: "/blog",
		FallbackFiles: []string{
			"beyond-basic-eda.md",
			"ml-models-fail-lessons.md",
			"optimizing-python-data.md",
		},
	}
	c.Static = staticPosts(c, now)
	return c
}

// ProjectCollection has no index; it always starts from its filename list.
func ProjectCollection() Collection {
	c := Collection{
		Name:       Projects,
		Dir:        "Projects",
		LinkPrefix: "/projects",
		FallbackFiles: []string{
			"customer-segmentation.md",
			"sales-forecasting.md",
			"nlp-customer-support.md",
			"anomaly-detection.md",
		},
	}
	c.Static = staticProjects(c)
	return c
}

func staticPosts(c Collection, now time.Time) []Item {
	day := func(offset int) *time.Time {
		d := now.AddDate(0, 0, -offset)
		return &d
	}
	post := func(id, title, excerpt, category string, date *time.Time, image, readTime string, tags ...string) Item {
		return Item{
			ID:         id,
			Collection: c.Name,
			Title:      title,
			Excerpt:    excerpt,
			Category:   category,
			Tags:       tags,
			Date:       date,
			Image:      image,
			Link:       c.LinkFor(id),
			ReadTime:   readTime,
			Body:       "# " + title + "\n\n" + excerpt,
		}
	}
	return []Item{
		post("beyond-basic-eda",
			"Beyond Basic EDA: Advanced Techniques for Data Scientists",
			"Move past simple exploratory data analysis with techniques that uncover hidden patterns in your data.",
			"Data Science", day(0),
			"https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d",
			"8 min read", "Data Analysis", "Statistics", "Visualization"),
		post("ml-models-fail-lessons",
			"Why ML Models Fail in Production: Lessons from the Field",
			"Common pitfalls that cause machine learning models to fail once deployed, and how to avoid them.",
			"Machine Learning", day(1),
			"https://images.unsplash.com/photo-1488590528505-98d2b5aba04b",
			"10 min read", "MLOps", "Production", "Deployment"),
		post("optimizing-python-data",
			"Optimizing Python Data Pipelines for Better Performance",
			"Practical techniques to speed up Python data processing and handle larger datasets.",
			"Data Engineering", day(7),
			"https://images.unsplash.com/photo-1461749280684-dccba630e2f6",
			"12 min read", "Python", "Performance", "Big Data"),
	}
}

func staticProjects(c Collection) []Item {
	project := func(id, title, description, image string, tags ...string) Item {
		return Item{
			ID:         id,
			Collection: c.Name,
			Title:      title,
			Excerpt:    description,
			Tags:       tags,
			Image:      image,
			Link:       c.LinkFor(id),
			Body:       "# " + title + "\n\n" + description,
		}
	}
	return []Item{
		project("customer-segmentation",
			"Customer Segmentation Analysis",
			"Unsupervised learning to segment customers by purchasing behavior, raising targeted campaign efficiency by 30%.",
			"https://images.unsplash.com/photo-1551288049-bebda4e38f71",
			"Python", "Scikit-learn", "Clustering", "Data Visualization"),
		project("sales-forecasting",
			"Predictive Sales Forecasting",
			"A time series model predicting monthly sales with 92% accuracy for better inventory planning.",
			"https://images.unsplash.com/photo-1526628953301-3e589a6a8b74",
			"Time Series", "Prophet", "Feature Engineering"),
		project("nlp-customer-support",
			"NLP for Customer Support",
			"Sentiment analysis that categorizes customer feedback automatically, cutting response time by 40%.",
			"https://images.unsplash.com/photo-1516321497487-e288fb19713f",
			"NLP", "BERT", "Python", "TensorFlow"),
		project("anomaly-detection",
			"Real-time Anomaly Detection",
			"Detects anomalies in IoT sensor streams in real time to prevent equipment failures.",
			"https://images.unsplash.com/photo-1534972195531-d756b9bfa9f2",
			"Anomaly Detection", "Streaming Data", "Kafka"),
	}
}
